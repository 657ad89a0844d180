// Copyright 2025 The flowcls Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package names maps numeric identifiers to names loaded from a flat text
// database, one mapping per line. Accepted identifier forms are hexadecimal
// "major:minor", "0x" prefixed hexadecimal, and plain decimal, each followed
// by the name token. A "#" starts a comment, blank lines are skipped.
package names

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

// numBuckets is fixed at load time. The registry is sized for databases of
// at most a few hundred entries.
const numBuckets = 256

type entry struct {
	id   uint32
	name string
	next *entry
}

// DB is an identifier to name registry. It is immutable after loading except
// for the reverse lookup cache, which makes it unsafe for concurrent use.
type DB struct {
	buckets []*entry
	// cached is the most recently matched entry of NameToID. Reverse
	// lookups tend to repeat the same name within one decode session.
	cached *entry
}

// Load reads the database at path.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, serrors.Wrap("opening names database", err, "path", path)
	}
	defer f.Close()
	db, err := LoadReader(f)
	if err != nil {
		return nil, serrors.Wrap("loading names database", err, "path", path)
	}
	return db, nil
}

// LoadReader reads a database from r. On a corrupt line no usable registry
// is returned.
func LoadReader(r io.Reader) (*DB, error) {
	db := &DB{buckets: make([]*entry, numBuckets)}
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		id, name, err := parseEntry(text)
		if err != nil {
			return nil, serrors.Wrap("database is corrupted", err,
				"line", line, "text", text)
		}
		if id < 0 {
			continue
		}
		db.insert(uint32(id), name)
	}
	if err := s.Err(); err != nil {
		return nil, serrors.Wrap("reading database", err)
	}
	return db, nil
}

// IDToName returns the name registered for id. An unknown id is rendered as
// its decimal text form with ok set to false; the result is always
// displayable.
func (db *DB) IDToName(id uint32) (name string, ok bool) {
	for e := db.buckets[id&(numBuckets-1)]; e != nil; e = e.next {
		if e.id == id {
			return e.name, true
		}
	}
	return strconv.FormatUint(uint64(id), 10), false
}

// NameToID returns the id registered for an exact match of name. The most
// recently matched entry is checked before scanning all buckets.
func (db *DB) NameToID(name string) (uint32, bool) {
	if db.cached != nil && db.cached.name == name {
		return db.cached.id, true
	}
	for _, e := range db.buckets {
		for ; e != nil; e = e.next {
			if e.name == name {
				db.cached = e
				return e.id, true
			}
		}
	}
	return 0, false
}

func (db *DB) insert(id uint32, name string) {
	h := id & (numBuckets - 1)
	db.buckets[h] = &entry{id: id, name: name, next: db.buckets[h]}
}

// parseEntry parses one non-blank, non-comment line. Negative decimal
// identifiers parse successfully but are skipped by the loader.
func parseEntry(text string) (int64, string, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, "", serrors.New("missing name token")
	}
	idTok, name := fields[0], fields[1]

	if maj, min, ok := strings.Cut(idTok, ":"); ok {
		hi, err := strconv.ParseUint(maj, 16, 16)
		if err != nil {
			return 0, "", serrors.Wrap("bad major", err)
		}
		lo, err := strconv.ParseUint(min, 16, 16)
		if err != nil {
			return 0, "", serrors.Wrap("bad minor", err)
		}
		return int64(hi<<16 | lo), name, nil
	}
	if rest, ok := strings.CutPrefix(idTok, "0x"); ok {
		id, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return 0, "", serrors.Wrap("bad hexadecimal id", err)
		}
		return int64(id), name, nil
	}
	id, err := strconv.ParseInt(idTok, 10, 33)
	if err != nil {
		return 0, "", serrors.Wrap("bad decimal id", err)
	}
	return id, name, nil
}
