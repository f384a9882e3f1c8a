package network_nmcli

import (
	"strconv"
	"strings"

	wifid "github.com/dogeorg/wifid/pkg"
)

const openSecurity = "--"

// ParseNetworkList turns `nmcli -t -f SSID,SECURITY,SIGNAL,DEVICE
// device wifi list` output into records. It never fails: short or
// odd lines just produce records with empty fields.
func ParseNetworkList(output string) []wifid.NetworkRecord {
	networks := []wifid.NetworkRecord{}
	for _, line := range splitLines(output) {
		networks = append(networks, parseNetworkLine(line))
	}
	return networks
}

// Depending on the nmcli version, colons inside an SSID may or may not
// be escaped, so the line is read from the right: the last three
// tokens are DEVICE, SIGNAL and SECURITY and whatever is left is the
// SSID.
func parseNetworkLine(line string) wifid.NetworkRecord {
	parts := strings.Split(line, ":")
	pop := func() string {
		if len(parts) == 0 {
			return ""
		}
		v := parts[len(parts)-1]
		parts = parts[:len(parts)-1]
		return v
	}

	device := pop()
	signal := pop()
	security := pop()
	ssid := unescape(strings.Join(parts, ":"))

	if security == "" {
		security = openSecurity
	}

	return wifid.NetworkRecord{
		Ssid:     ssid,
		Security: security,
		Signal:   parseSignal(signal),
		Iface:    nonEmpty(device),
	}
}

// 0 is a real signal strength, so anything unparseable is nil rather
// than zero.
func parseSignal(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// ParseAddress finds the first line starting with key and returns its
// value without the /prefix suffix. Both `KEY=value` and nmcli's terse
// `KEY[1]:value` forms are understood.
func ParseAddress(output, key string) *string {
	for _, line := range splitLines(output) {
		if !strings.HasPrefix(line, key) {
			continue
		}

		var value string
		if i := strings.IndexByte(line, '='); i >= 0 {
			value = line[i+1:]
		} else if i := strings.IndexByte(line, ':'); i >= 0 {
			value = line[i+1:]
		}

		value, _, _ = strings.Cut(value, "/")
		return nonEmpty(strings.TrimSpace(value))
	}
	return nil
}

func ParseIPv4Address(output string) *string {
	return ParseAddress(output, addressFields)
}

// FindActiveConnection returns the first NAME:DEVICE:TYPE:STATE row
// whose NAME is exactly name, or nil.
func FindActiveConnection(output, name string) *wifid.ActiveConnection {
	prefixes := []string{name + ":"}
	if escaped := escape(name); escaped != name {
		prefixes = append(prefixes, escaped+":")
	}

	for _, line := range splitLines(output) {
		for _, p := range prefixes {
			rest, ok := strings.CutPrefix(line, p)
			if !ok {
				continue
			}
			fields := strings.SplitN(rest, ":", 3)
			for len(fields) < 3 {
				fields = append(fields, "")
			}
			return &wifid.ActiveConnection{
				Name:   name,
				Device: fields[0],
				Type:   fields[1],
				State:  fields[2],
			}
		}
	}
	return nil
}

// FindActiveDevice is FindActiveConnection reduced to the device name.
func FindActiveDevice(output, name string) *string {
	conn := FindActiveConnection(output, name)
	if conn == nil {
		return nil
	}
	return nonEmpty(conn.Device)
}

func splitLines(output string) []string {
	lines := []string{}
	for _, l := range strings.Split(strings.TrimSpace(output), "\n") {
		l = strings.TrimRight(l, "\r")
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// nmcli -t escapes ':' and '\' with a backslash. Other backslashes are
// left alone so older versions that do not escape still round-trip.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == ':' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `:`, `\:`).Replace(s)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
