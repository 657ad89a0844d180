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
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

// AttrOptions is the outer container attribute wrapping one encoded rule.
const AttrOptions uint16 = 2

// Wire attribute identifiers of the flower classifier. The numbering mirrors
// the kernel's and must stay stable.
const (
	AttrUnspec uint16 = iota
	AttrClassID
	AttrInDev
	AttrAct
	AttrKeyEthDst
	AttrKeyEthDstMask
	AttrKeyEthSrc
	AttrKeyEthSrcMask
	AttrKeyEthType
	AttrKeyIPProto
	AttrKeyIPv4Src
	AttrKeyIPv4SrcMask
	AttrKeyIPv4Dst
	AttrKeyIPv4DstMask
	AttrKeyIPv6Src
	AttrKeyIPv6SrcMask
	AttrKeyIPv6Dst
	AttrKeyIPv6DstMask
	AttrKeyTCPSrc
	AttrKeyTCPDst
	AttrKeyUDPSrc
	AttrKeyUDPDst
	AttrFlags
	AttrKeyVLANID
	AttrKeyVLANPrio
	AttrKeyVLANEthType
)

// SCTP port keys were assigned later than the contiguous block above.
const (
	AttrKeySCTPSrc uint16 = 41
	AttrKeySCTPDst uint16 = 42
)

// Rule flags. Both bits may be set at the same time.
const (
	FlagSkipHW uint32 = 1 << 0
	FlagSkipSW uint32 = 1 << 1
)

// ifNameSize is the maximum interface name length including the trailing NUL.
const ifNameSize = unix.IFNAMSIZ

// EthType is an ethertype in host byte order.
type EthType uint16

// Ethertypes understood symbolically by the rule language.
const (
	EthTypeIPv4 EthType = unix.ETH_P_IP
	EthTypeIPv6 EthType = unix.ETH_P_IPV6
	EthTypeVLAN EthType = unix.ETH_P_8021Q
)

func (t EthType) String() string {
	switch t {
	case EthTypeIPv4:
		return "ipv4"
	case EthTypeIPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("%04x", uint16(t))
	}
}

// isIP reports whether t selects one of the two IP address families.
func (t EthType) isIP() bool {
	return t == EthTypeIPv4 || t == EthTypeIPv6
}

// ParseEthType parses a symbolic or hexadecimal ethertype.
func ParseEthType(s string) (EthType, error) {
	switch strings.ToLower(s) {
	case "ip", "ipv4":
		return EthTypeIPv4, nil
	case "ipv6":
		return EthTypeIPv6, nil
	case "802.1q", "vlan":
		return EthTypeVLAN, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, serrors.Wrap("invalid ethertype", err, "value", s)
	}
	return EthType(v), nil
}

// IPProto is a transport protocol number.
type IPProto uint8

// Transport protocols understood symbolically by the rule language.
const (
	IPProtoTCP  IPProto = unix.IPPROTO_TCP
	IPProtoUDP  IPProto = unix.IPPROTO_UDP
	IPProtoSCTP IPProto = unix.IPPROTO_SCTP
)

func (p IPProto) String() string {
	switch p {
	case IPProtoTCP:
		return "tcp"
	case IPProtoUDP:
		return "udp"
	case IPProtoSCTP:
		return "sctp"
	default:
		return fmt.Sprintf("%02x", uint8(p))
	}
}

// ParseIPProto parses a symbolic or hexadecimal transport protocol.
func ParseIPProto(s string) (IPProto, error) {
	switch strings.ToLower(s) {
	case "tcp":
		return IPProtoTCP, nil
	case "udp":
		return IPProtoUDP, nil
	case "sctp":
		return IPProtoSCTP, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 8)
	if err != nil {
		return 0, serrors.Wrap("invalid ip protocol", err, "value", s)
	}
	return IPProto(v), nil
}

// portAttrType selects the wire attribute carrying a port match, keyed by the
// transport protocol and the direction. Protocols outside the supported set
// report !ok.
func portAttrType(proto IPProto, src bool) (uint16, bool) {
	switch proto {
	case IPProtoTCP:
		if src {
			return AttrKeyTCPSrc, true
		}
		return AttrKeyTCPDst, true
	case IPProtoUDP:
		if src {
			return AttrKeyUDPSrc, true
		}
		return AttrKeyUDPDst, true
	case IPProtoSCTP:
		if src {
			return AttrKeySCTPSrc, true
		}
		return AttrKeySCTPDst, true
	}
	return 0, false
}
