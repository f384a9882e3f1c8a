package wifid

// A single row of `nmcli device wifi list`.
type NetworkRecord struct {
	Ssid     string  `json:"ssid"`
	Security string  `json:"security"` // "--" means open
	Signal   *int    `json:"signal"`
	Iface    *string `json:"iface"`
}

type ConnectResult struct {
	OK    bool    `json:"ok"`
	Iface *string `json:"iface"`
	IP    *string `json:"ip"`
}

// A row of `nmcli connection show --active`. Only used to work out
// which device ended up carrying a freshly joined network.
type ActiveConnection struct {
	Name   string
	Device string
	Type   string
	State  string
}

type ConnectRequest struct {
	Ssid     string `json:"ssid"`
	Password string `json:"password,omitempty"`
}

type WirelessInterface struct {
	Name         string `json:"name"`
	HardwareAddr string `json:"hardwareAddr"`
	PHY          int    `json:"phy"`
}

type HealthStatus struct {
	OK bool    `json:"ok"`
	TS float64 `json:"ts"` // unix seconds
}
