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

package flower

import (
	"encoding/binary"
	"errors"
	"net"
	"net/netip"
	"strconv"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

// ErrHelp is returned by Encoder.Encode when the help clause is seen. The
// parse is aborted; callers are expected to display Usage.
var ErrHelp = errors.New("help requested")

// Usage returns the clause grammar of the rule language.
func Usage() string {
	return `Usage: ... flower [ MATCH-LIST ]
                  [ skip_sw | skip_hw ]
                  [ action ACTION-SPEC ] [ classid CLASSID ]

Where: MATCH-LIST := [ MATCH-LIST ] MATCH
       MATCH      := { indev DEV-NAME |
                       vlan_id VID |
                       vlan_prio PRIORITY |
                       vlan_ethtype [ ipv4 | ipv6 | ETH-TYPE ] |
                       dst_mac MAC-ADDR |
                       src_mac MAC-ADDR |
                       ip_proto [ tcp | udp | sctp | IP-PROTO ] |
                       dst_ip [ IPV4-ADDR | IPV6-ADDR ] |
                       src_ip [ IPV4-ADDR | IPV6-ADDR ] |
                       dst_port PORT-NUMBER |
                       src_port PORT-NUMBER }
       CLASSID    := HANDLE-MAJ:HANDLE-MIN
       ACTION-SPEC := ... look at individual actions

NOTE: CLASSID and IP-PROTO are parsed as hexadecimal input.
`
}

// Encoder turns a clause token stream into the wire attribute blob of one
// rule. The zero value encodes rules with a zero outer ethertype and no
// action support.
type Encoder struct {
	// EthType is the outer frame ethertype the rule is attached to. It
	// gates the VLAN and IP clauses and is emitted with every rule.
	EthType EthType
	// Actions handles the action sub-language. If nil, the action clause
	// is rejected.
	Actions ActionParser
}

// Filter is one encoded rule.
type Filter struct {
	Handle uint32
	// Options is the attribute blob, everything nested under the options
	// container.
	Options []byte
}

// attr is one (identifier, value) pair recorded by the encoder.
type attr struct {
	typ uint16
	val []byte
}

// ruleState is the parser state threaded through the clause handlers. It
// carries the protocol context later clauses depend on, the flags word, and
// the field accumulator.
type ruleState struct {
	ethType     EthType // outer ethertype, fixed for the whole rule
	vlanEthType EthType // inner ethertype once vlan_ethtype was parsed
	proto       IPProto
	protoSet    bool
	flags       uint32

	attrs  []attr
	byType map[uint16]int
}

// put records a value, overwriting an earlier value for the same identifier
// while keeping its position.
func (s *ruleState) put(typ uint16, val []byte) {
	if i, ok := s.byType[typ]; ok {
		s.attrs[i].val = val
		return
	}
	s.byType[typ] = len(s.attrs)
	s.attrs = append(s.attrs, attr{typ: typ, val: val})
}

// effectiveEthType is the protocol context for IP dependent clauses: the
// VLAN inner ethertype when one was set, the outer ethertype otherwise.
func (s *ruleState) effectiveEthType() EthType {
	if s.vlanEthType != 0 {
		return s.vlanEthType
	}
	return s.ethType
}

// Encode parses the handle and the clause tokens and returns the encoded
// rule. Errors identify the clause that triggered them and no partial rule
// is returned. A rule with no clauses is legal and matches by ethertype
// only.
func (e *Encoder) Encode(handle string, args []string) (*Filter, error) {
	f := &Filter{}
	if handle != "" {
		h, err := strconv.ParseUint(handle, 0, 32)
		if err != nil {
			return nil, serrors.Wrap("illegal handle", err, "handle", handle)
		}
		f.Handle = uint32(h)
	}

	st := &ruleState{ethType: e.EthType, byType: make(map[uint16]int)}
	for len(args) > 0 {
		clause := args[0]
		args = args[1:]
		switch clause {
		case "classid", "flowid":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			h, err := ParseClassID(arg)
			if err != nil {
				return nil, serrors.Wrap("illegal classid", err, "clause", clause)
			}
			st.put(AttrClassID, nlenc.Uint32Bytes(h))
		case "skip_hw":
			st.flags |= FlagSkipHW
		case "skip_sw":
			st.flags |= FlagSkipSW
		case "indev":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			st.put(AttrInDev, devName(arg))
		case "vlan_id":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parseVLANID(arg, st); err != nil {
				return nil, err
			}
		case "vlan_prio":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parseVLANPrio(arg, st); err != nil {
				return nil, err
			}
		case "vlan_ethtype":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parseVLANEthType(arg, st); err != nil {
				return nil, err
			}
		case "dst_mac", "src_mac":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parseEthAddr(clause, arg, st); err != nil {
				return nil, err
			}
		case "ip_proto":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parseIPProtoClause(arg, st); err != nil {
				return nil, err
			}
		case "dst_ip", "src_ip":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parseIPAddr(clause, arg, st); err != nil {
				return nil, err
			}
		case "dst_port", "src_port":
			arg, err := nextArg(clause, &args)
			if err != nil {
				return nil, err
			}
			if err := parsePort(clause, arg, st); err != nil {
				return nil, err
			}
		case "action":
			if e.Actions == nil {
				return nil, serrors.New("action not supported", "clause", clause)
			}
			blob, n, err := e.Actions.Parse(args)
			if err != nil {
				return nil, serrors.Wrap("illegal action", err, "clause", clause)
			}
			st.put(AttrAct, blob)
			args = args[n:]
		case "help":
			return nil, ErrHelp
		default:
			return nil, serrors.New("unknown clause", "clause", clause)
		}
	}

	// Every rule carries the flags word and the outer ethertype, even one
	// with no clauses.
	st.put(AttrFlags, nlenc.Uint32Bytes(st.flags))
	st.put(AttrKeyEthType, be16Bytes(uint16(st.ethType)))

	options, err := serialize(st.attrs)
	if err != nil {
		return nil, serrors.Wrap("serializing rule", err)
	}
	f.Options = options
	return f, nil
}

// nextArg pops the argument token of a clause.
func nextArg(clause string, args *[]string) (string, error) {
	if len(*args) == 0 {
		return "", serrors.New("missing argument", "clause", clause)
	}
	arg := (*args)[0]
	*args = (*args)[1:]
	return arg, nil
}

func parseVLANID(arg string, st *ruleState) error {
	if st.ethType != EthTypeVLAN {
		return serrors.New("vlan_id requires an 802.1Q ethertype", "clause", "vlan_id")
	}
	vid, err := strconv.ParseUint(arg, 10, 16)
	if err != nil || vid&^0xfff != 0 {
		return serrors.New("illegal vlan_id", "clause", "vlan_id", "value", arg)
	}
	st.put(AttrKeyVLANID, nlenc.Uint16Bytes(uint16(vid)))
	return nil
}

func parseVLANPrio(arg string, st *ruleState) error {
	if st.ethType != EthTypeVLAN {
		return serrors.New("vlan_prio requires an 802.1Q ethertype", "clause", "vlan_prio")
	}
	prio, err := strconv.ParseUint(arg, 10, 8)
	if err != nil || prio&^0x7 != 0 {
		return serrors.New("illegal vlan_prio", "clause", "vlan_prio", "value", arg)
	}
	st.put(AttrKeyVLANPrio, []byte{uint8(prio)})
	return nil
}

func parseVLANEthType(arg string, st *ruleState) error {
	if st.ethType != EthTypeVLAN {
		return serrors.New("vlan_ethtype requires an 802.1Q ethertype",
			"clause", "vlan_ethtype")
	}
	et, err := ParseEthType(arg)
	if err != nil {
		return serrors.Wrap("illegal vlan_ethtype", err, "clause", "vlan_ethtype")
	}
	st.put(AttrKeyVLANEthType, be16Bytes(uint16(et)))
	st.vlanEthType = et
	return nil
}

func parseEthAddr(clause, arg string, st *ruleState) error {
	hw, err := net.ParseMAC(arg)
	if err != nil || len(hw) != 6 {
		return serrors.New("illegal MAC address", "clause", clause, "value", arg)
	}
	addrType, maskType := AttrKeyEthDst, AttrKeyEthDstMask
	if clause == "src_mac" {
		addrType, maskType = AttrKeyEthSrc, AttrKeyEthSrcMask
	}
	st.put(addrType, hw)
	// Only exact MAC matches are supported, the mask is always all-ones.
	st.put(maskType, allOnes(6))
	return nil
}

func parseIPProtoClause(arg string, st *ruleState) error {
	if !st.effectiveEthType().isIP() {
		return serrors.New("ip_proto requires an IP ethertype",
			"clause", "ip_proto", "eth_type", st.effectiveEthType())
	}
	proto, err := ParseIPProto(arg)
	if err != nil {
		return serrors.Wrap("illegal ip_proto", err, "clause", "ip_proto")
	}
	st.put(AttrKeyIPProto, []byte{uint8(proto)})
	st.proto = proto
	st.protoSet = true
	return nil
}

func parseIPAddr(clause, arg string, st *ruleState) error {
	et := st.effectiveEthType()
	if !et.isIP() {
		return serrors.New("IP address requires an IP ethertype",
			"clause", clause, "eth_type", et)
	}

	addrStr, bits := arg, -1
	if prefix, err := netip.ParsePrefix(arg); err == nil {
		addrStr, bits = prefix.Addr().String(), prefix.Bits()
	}
	ip, err := netip.ParseAddr(addrStr)
	if err != nil {
		return serrors.Wrap("illegal IP address", err, "clause", clause)
	}
	if v4 := et == EthTypeIPv4; v4 != ip.Is4() {
		return serrors.New("address family does not match the ethertype",
			"clause", clause, "eth_type", et)
	}

	var addrType, maskType uint16
	var raw []byte
	if ip.Is4() {
		addrType, maskType = AttrKeyIPv4Dst, AttrKeyIPv4DstMask
		if clause == "src_ip" {
			addrType, maskType = AttrKeyIPv4Src, AttrKeyIPv4SrcMask
		}
		a := ip.As4()
		raw = a[:]
	} else {
		addrType, maskType = AttrKeyIPv6Dst, AttrKeyIPv6DstMask
		if clause == "src_ip" {
			addrType, maskType = AttrKeyIPv6Src, AttrKeyIPv6SrcMask
		}
		a := ip.As16()
		raw = a[:]
	}
	if bits < 0 {
		bits = len(raw) * 8
	}
	st.put(addrType, raw)
	st.put(maskType, prefixMask(bits, len(raw)))
	return nil
}

func parsePort(clause, arg string, st *ruleState) error {
	if !st.protoSet {
		return serrors.New("port match requires a prior ip_proto clause",
			"clause", clause)
	}
	typ, ok := portAttrType(st.proto, clause == "src_port")
	if !ok {
		return serrors.New("illegal ip_proto for port match",
			"clause", clause, "ip_proto", st.proto)
	}
	port, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return serrors.New("illegal port", "clause", clause, "value", arg)
	}
	st.put(typ, be16Bytes(uint16(port)))
	return nil
}

// devName truncates an interface name to the platform limit and appends the
// trailing NUL carried on the wire.
func devName(name string) []byte {
	if len(name) > ifNameSize-1 {
		name = name[:ifNameSize-1]
	}
	return append([]byte(name), 0)
}

func be16Bytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

// serialize writes the recorded fields through the attribute container,
// nesting everything under the options attribute. The container finalizes
// the outer length.
func serialize(attrs []attr) ([]byte, error) {
	ae := netlink.NewAttributeEncoder()
	ae.Nested(AttrOptions, func(nae *netlink.AttributeEncoder) error {
		for _, a := range attrs {
			nae.Bytes(a.typ, a.val)
		}
		return nil
	})
	return ae.Encode()
}
