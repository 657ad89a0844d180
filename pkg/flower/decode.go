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
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"

	"github.com/flowcls/flowcls/pkg/names"
)

// Decoder renders an encoded rule in human readable form. Decoding is best
// effort: attributes that are absent or carry an unexpected length are
// skipped silently, the decoder never fails.
type Decoder struct {
	// Names resolves classid handles to registered names. If nil, handles
	// are rendered in major:minor form.
	Names *names.DB
	// Actions renders the action blob. If nil, the action attribute is
	// skipped.
	Actions ActionRenderer
}

// Decode renders the rule carried in the options blob. A nonzero handle is
// included in the rendering.
func (d *Decoder) Decode(handle uint32, options []byte) string {
	tb := parseAttrs(options)

	var b strings.Builder
	if handle != 0 {
		fmt.Fprintf(&b, "handle 0x%x ", handle)
	}
	if v, ok := tb[AttrClassID]; ok && len(v) == 4 {
		fmt.Fprintf(&b, "classid %s ", d.classIDString(nlenc.Uint32(v)))
	}
	if v, ok := tb[AttrInDev]; ok {
		fmt.Fprintf(&b, "\n  indev %s", stringFromZ(v))
	}
	if v, ok := tb[AttrKeyVLANID]; ok && len(v) == 2 {
		fmt.Fprintf(&b, "\n  vlan_id %d", nlenc.Uint16(v))
	}
	if v, ok := tb[AttrKeyVLANPrio]; ok && len(v) == 1 {
		fmt.Fprintf(&b, "\n  vlan_prio %d", v[0])
	}

	printEthAddr(&b, "dst_mac", tb[AttrKeyEthDst], tb[AttrKeyEthDstMask])
	printEthAddr(&b, "src_mac", tb[AttrKeyEthSrc], tb[AttrKeyEthSrcMask])

	// The ethertype and transport protocol attributes double as the decode
	// side context selecting the address family and port attributes below.
	ethType, haveEthType := printEthType(&b, tb[AttrKeyEthType])
	proto, haveProto := printIPProto(&b, tb[AttrKeyIPProto])

	if haveEthType {
		printIPAddr(&b, "dst_ip", ethType,
			tb[AttrKeyIPv4Dst], tb[AttrKeyIPv4DstMask],
			tb[AttrKeyIPv6Dst], tb[AttrKeyIPv6DstMask])
		printIPAddr(&b, "src_ip", ethType,
			tb[AttrKeyIPv4Src], tb[AttrKeyIPv4SrcMask],
			tb[AttrKeyIPv6Src], tb[AttrKeyIPv6SrcMask])
	}
	if haveProto {
		printPort(&b, "dst_port", proto, false, tb)
		printPort(&b, "src_port", proto, true, tb)
	}

	if v, ok := tb[AttrFlags]; ok && len(v) == 4 {
		flags := nlenc.Uint32(v)
		if flags&FlagSkipHW != 0 {
			b.WriteString("\n  skip_hw")
		}
		if flags&FlagSkipSW != 0 {
			b.WriteString("\n  skip_sw")
		}
	}
	if v, ok := tb[AttrAct]; ok && d.Actions != nil {
		b.WriteString(d.Actions.Render(v))
	}
	return b.String()
}

func (d *Decoder) classIDString(h uint32) string {
	if d.Names != nil {
		name, _ := d.Names.IDToName(h)
		return name
	}
	return FormatClassID(h)
}

// parseAttrs demultiplexes the options blob into a table indexed by
// attribute identifier. A later duplicate wins. Corrupt trailing data is
// dropped together with everything after it.
func parseAttrs(options []byte) map[uint16][]byte {
	ad, err := netlink.NewAttributeDecoder(options)
	if err != nil {
		return nil
	}
	var opts []byte
	for ad.Next() {
		if ad.Type() == AttrOptions {
			opts = ad.Bytes()
		}
	}
	if ad.Err() != nil || opts == nil {
		return nil
	}
	nad, err := netlink.NewAttributeDecoder(opts)
	if err != nil {
		return nil
	}
	tb := make(map[uint16][]byte)
	for nad.Next() {
		tb[nad.Type()] = nad.Bytes()
	}
	return tb
}

func printEthAddr(b *strings.Builder, name string, addr, mask []byte) {
	if len(addr) != 6 {
		return
	}
	fmt.Fprintf(b, "\n  %s %s", name, net.HardwareAddr(addr))
	if len(mask) != 6 {
		return
	}
	bits, class := MaskBits(mask)
	switch {
	case class == MaskNoncontiguous:
		fmt.Fprintf(b, "/%s", net.HardwareAddr(mask))
	case bits < 6*8:
		fmt.Fprintf(b, "/%d", bits)
	}
}

func printEthType(b *strings.Builder, v []byte) (EthType, bool) {
	if len(v) != 2 {
		return 0, false
	}
	et := EthType(beUint16(v))
	fmt.Fprintf(b, "\n  eth_type %s", et)
	return et, true
}

func printIPProto(b *strings.Builder, v []byte) (IPProto, bool) {
	if len(v) != 1 {
		return 0, false
	}
	proto := IPProto(v[0])
	fmt.Fprintf(b, "\n  ip_proto %s", proto)
	return proto, true
}

func printIPAddr(b *strings.Builder, name string, et EthType,
	addr4, mask4, addr6, mask6 []byte) {

	var addr, mask []byte
	var size int
	switch et {
	case EthTypeIPv4:
		addr, mask, size = addr4, mask4, 4
	case EthTypeIPv6:
		addr, mask, size = addr6, mask6, 16
	default:
		return
	}
	if len(addr) != size {
		return
	}
	fmt.Fprintf(b, "\n  %s %s", name, ipString(addr))
	if len(mask) != size {
		return
	}
	bits, class := MaskBits(mask)
	switch {
	case class == MaskNoncontiguous:
		fmt.Fprintf(b, "/%s", ipString(mask))
	case bits < size*8:
		fmt.Fprintf(b, "/%d", bits)
	}
}

func printPort(b *strings.Builder, name string, proto IPProto, src bool,
	tb map[uint16][]byte) {

	typ, ok := portAttrType(proto, src)
	if !ok {
		return
	}
	v, ok := tb[typ]
	if !ok || len(v) != 2 {
		return
	}
	fmt.Fprintf(b, "\n  %s %d", name, beUint16(v))
}

func ipString(raw []byte) string {
	addr, ok := netip.AddrFromSlice(raw)
	if !ok {
		return ""
	}
	return addr.String()
}

// stringFromZ interprets a NUL terminated byte string.
func stringFromZ(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func beUint16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}
