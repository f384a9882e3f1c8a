package network_nmcli

// Field selections passed to -f. nmcli prints the columns in this
// order, which the parsers rely on.
const (
	scanFields    = "SSID,SECURITY,SIGNAL,DEVICE"
	addressFields = "IP4.ADDRESS"
	activeFields  = "NAME,DEVICE,TYPE,STATE"
)

// Every builder returns a fresh slice. User supplied values (ssid,
// password, interface) are always their own element so nothing can be
// smuggled into another argument.

func ScanArgs() []string {
	return []string{"-t", "-f", scanFields, "device", "wifi", "list"}
}

func RescanArgs(iface string) []string {
	args := []string{"device", "wifi", "rescan"}
	if iface != "" {
		args = append(args, "ifname", iface)
	}
	return args
}

func ConnectArgs(ssid, iface, password string) []string {
	args := []string{"device", "wifi", "connect", ssid}
	if iface != "" {
		args = append(args, "ifname", iface)
	}
	if password != "" {
		args = append(args, "password", password)
	}
	return args
}

func DeviceAddressArgs(iface string) []string {
	return []string{"-t", "-f", addressFields, "device", "show", iface}
}

func ActiveConnectionsArgs() []string {
	return []string{"-t", "-f", activeFields, "connection", "show", "--active"}
}

func VersionArgs() []string {
	return []string{"--version"}
}
