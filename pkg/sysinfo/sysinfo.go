// Package sysinfo collects the host identity attached to every work session:
// hostname, primary IPv4 and MAC address, plus per-interface detail.
package sysinfo

import (
	"encoding/json"
	"fmt"
	stdnet "net"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/net"
)

const (
	fallbackIP  = "127.0.0.1"
	fallbackMAC = "00:00:00:00:00:00"
)

type InterfaceInfo struct {
	Name string   `json:"name"`
	MAC  string   `json:"mac,omitempty"`
	IPs  []string `json:"ips,omitempty"`
}

type Snapshot struct {
	Hostname   string          `json:"hostname"`
	PrimaryIP  string          `json:"primary_ip"`
	PrimaryMAC string          `json:"primary_mac"`
	Platform   string          `json:"platform"`
	Kernel     string          `json:"kernel"`
	Uptime     uint64          `json:"uptime"`
	Interfaces []InterfaceInfo `json:"interfaces"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Collect gathers the snapshot. Interface enumeration failures degrade to the
// loopback/zero fallbacks rather than failing the snapshot; only a host query
// failure is an error.
func Collect() (*Snapshot, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to query host info: %w", err)
	}

	snap := &Snapshot{
		Hostname:   info.Hostname,
		PrimaryIP:  fallbackIP,
		PrimaryMAC: fallbackMAC,
		Platform:   fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
		Kernel:     info.KernelVersion,
		Uptime:     info.Uptime,
		Timestamp:  time.Now(),
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return snap, nil
	}

	for _, iface := range ifaces {
		if isLoopback(iface) {
			continue
		}

		entry := InterfaceInfo{Name: iface.Name, MAC: iface.HardwareAddr}
		for _, addr := range iface.Addrs {
			ip := stripPrefix(addr.Addr)
			if ip == "" {
				continue
			}
			entry.IPs = append(entry.IPs, ip)
		}
		snap.Interfaces = append(snap.Interfaces, entry)
	}

	ip, mac := electPrimary(snap.Interfaces)
	if ip != "" {
		snap.PrimaryIP = ip
	} else if probed := probePrimaryIP(); probed != "" {
		snap.PrimaryIP = probed
	}
	if mac != "" {
		snap.PrimaryMAC = mac
	}

	return snap, nil
}

// electPrimary picks the first interface carrying both a usable IPv4 address
// and a hardware address.
func electPrimary(ifaces []InterfaceInfo) (string, string) {
	var firstIP, firstMAC string

	for _, iface := range ifaces {
		if firstMAC == "" && iface.MAC != "" {
			firstMAC = iface.MAC
		}
		for _, ip := range iface.IPs {
			if !usableIPv4(ip) {
				continue
			}
			if firstIP == "" {
				firstIP = ip
			}
			if iface.MAC != "" {
				return ip, iface.MAC
			}
		}
	}

	return firstIP, firstMAC
}

// probePrimaryIP determines the outbound IPv4 by dialing a well-known address.
// UDP dial does not send any packet; it only asks the kernel for a route.
func probePrimaryIP() string {
	conn, err := stdnet.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*stdnet.UDPAddr)
	if !ok {
		return ""
	}
	return local.IP.String()
}

func isLoopback(iface net.InterfaceStat) bool {
	for _, flag := range iface.Flags {
		if flag == "loopback" {
			return true
		}
	}
	return false
}

// usableIPv4 reports whether ip is an IPv4 address suitable as the machine's
// primary: not loopback, not link-local, not IPv6.
func usableIPv4(ip string) bool {
	parsed := stdnet.ParseIP(ip)
	if parsed == nil || parsed.To4() == nil {
		return false
	}
	if parsed.IsLoopback() || parsed.IsLinkLocalUnicast() {
		return false
	}
	return true
}

// stripPrefix turns "192.168.1.10/24" into "192.168.1.10"; plain addresses
// pass through.
func stripPrefix(addr string) string {
	if idx := strings.IndexByte(addr, '/'); idx != -1 {
		return addr[:idx]
	}
	return addr
}

// JSON renders the snapshot as indented JSON.
func (s *Snapshot) JSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return string(data), nil
}

// InterfacesJSON renders only the per-interface detail, used for the
// persisted system-info record.
func (s *Snapshot) InterfacesJSON() string {
	data, err := json.Marshal(s.Interfaces)
	if err != nil {
		return "[]"
	}
	return string(data)
}
