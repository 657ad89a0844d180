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

// Package flower implements the bidirectional codec between the textual rule
// language of the flower packet classifier and its binary attribute
// encoding.
//
// The encoder validates each clause against the protocol context established
// by earlier clauses: VLAN clauses require an 802.1Q outer ethertype, IP
// clauses an IPv4 or IPv6 effective ethertype, and port clauses a known
// transport protocol. The decoder is the inverse pass and is best effort:
// it renders what it can and never fails.
package flower
