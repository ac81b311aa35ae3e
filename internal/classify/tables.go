package classify

import (
	"regexp"

	"github.com/leasetrace/leasetrace/pkg/models"
)

// Rule tables for the fallback classifier. All tables are ordered
// slices evaluated first-match-wins; priority is the slice order, not
// map iteration luck. The tables are immutable after init and safe to
// share across concurrent classifications.

type osPattern struct {
	re *regexp.Regexp
	os string
}

type typePattern struct {
	re         *regexp.Regexp
	deviceType models.DeviceType
}

type iotPattern struct {
	re         *regexp.Regexp
	os         string
	deviceType models.DeviceType
}

// hostnameOSPatterns maps hostname shapes to operating systems.
var hostnameOSPatterns = []osPattern{
	// Windows
	{regexp.MustCompile(`(?i)win(?:dows)?`), "Windows"},
	{regexp.MustCompile(`(?i)desktop`), "Windows"},
	{regexp.MustCompile(`(?i)pc`), "Windows"},
	{regexp.MustCompile(`(?i)workstation`), "Windows"},

	// Apple
	{regexp.MustCompile(`(?i)macbook`), "macOS"},
	{regexp.MustCompile(`(?i)imac`), "macOS"},
	{regexp.MustCompile(`(?i)mac`), "macOS"},
	{regexp.MustCompile(`(?i)iphone`), "iOS"},
	{regexp.MustCompile(`(?i)ipad`), "iPadOS"},
	{regexp.MustCompile(`(?i)apple`), "iOS/macOS"},

	// Android
	{regexp.MustCompile(`(?i)android`), "Android"},
	{regexp.MustCompile(`(?i)galaxy`), "Android"},
	{regexp.MustCompile(`(?i)pixel`), "Android"},
	{regexp.MustCompile(`(?i)oneplus`), "Android"},
	{regexp.MustCompile(`(?i)samsung`), "Android"},

	// Smart home / IoT
	{regexp.MustCompile(`(?i)ring`), "Linux"},
	{regexp.MustCompile(`(?i)nest`), "Linux"},
	{regexp.MustCompile(`(?i)echo`), "Fire OS"},
	{regexp.MustCompile(`(?i)alexa`), "Fire OS"},
	{regexp.MustCompile(`(?i)firetv`), "Fire OS"},
	{regexp.MustCompile(`(?i)fire.*tv`), "Fire OS"},
	{regexp.MustCompile(`(?i)chromecast`), "Chrome OS"},
	{regexp.MustCompile(`(?i)esp_`), "Embedded OS"},
	{regexp.MustCompile(`(?i)esp32`), "Embedded OS"},
	{regexp.MustCompile(`(?i)esp8266`), "Embedded OS"},

	// Gaming consoles
	{regexp.MustCompile(`(?i)ps[0-9]`), "PlayStation OS"},
	{regexp.MustCompile(`(?i)playstation`), "PlayStation OS"},
	{regexp.MustCompile(`(?i)xbox`), "Xbox OS"},
	{regexp.MustCompile(`(?i)nintendo`), "Nintendo OS"},

	// Printers
	{regexp.MustCompile(`(?i)printer`), "Embedded OS"},
	{regexp.MustCompile(`(?i)hp.*print`), "Embedded OS"},
	{regexp.MustCompile(`(?i)canon.*print`), "Embedded OS"},
	{regexp.MustCompile(`(?i)epson.*print`), "Embedded OS"},

	// Linux / Unix
	{regexp.MustCompile(`(?i)ubuntu`), "Linux"},
	{regexp.MustCompile(`(?i)debian`), "Linux"},
	{regexp.MustCompile(`(?i)linux`), "Linux"},
	{regexp.MustCompile(`(?i)raspberrypi`), "Linux"},
	{regexp.MustCompile(`(?i)raspberry`), "Linux"},
	{regexp.MustCompile(`(?i)pfsense`), "FreeBSD"},
	{regexp.MustCompile(`(?i)freebsd`), "FreeBSD"},

	// Network devices
	{regexp.MustCompile(`(?i)router`), "RouterOS/Linux"},
	{regexp.MustCompile(`(?i)gateway`), "Linux"},
	{regexp.MustCompile(`(?i)switch`), "Linux"},
	{regexp.MustCompile(`(?i)access.*point`), "Linux"},
}

// hostnameTypePatterns maps hostname shapes to device types, ordered
// most specific first.
var hostnameTypePatterns = []typePattern{
	// Exact device identification
	{regexp.MustCompile(`(?i)iphone`), models.DeviceTypePhone},
	{regexp.MustCompile(`(?i)ipad`), models.DeviceTypeTablet},
	{regexp.MustCompile(`(?i)galaxy`), models.DeviceTypePhone},
	{regexp.MustCompile(`(?i)pixel`), models.DeviceTypePhone},

	// Smart home / IoT
	{regexp.MustCompile(`(?i)ring.*camera`), models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)ring.*doorbell`), models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)nest.*thermostat`), models.DeviceTypeThermostat},
	{regexp.MustCompile(`(?i)nest.*cam`), models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)echo.*dot`), models.DeviceTypeSmartSpeaker},
	{regexp.MustCompile(`(?i)echo.*show`), models.DeviceTypeSmartSpeaker},
	{regexp.MustCompile(`(?i)echo.*studio`), models.DeviceTypeSmartSpeaker},
	{regexp.MustCompile(`(?i)alexa`), models.DeviceTypeSmartSpeaker},
	{regexp.MustCompile(`(?i)chromecast`), models.DeviceTypeStreaming},
	{regexp.MustCompile(`(?i)firetv.*stick`), models.DeviceTypeStreaming},
	{regexp.MustCompile(`(?i)fire.*tv`), models.DeviceTypeStreaming},
	{regexp.MustCompile(`(?i)apple.*tv`), models.DeviceTypeStreaming},
	{regexp.MustCompile(`(?i)roku`), models.DeviceTypeStreaming},
	{regexp.MustCompile(`(?i)hue.*bridge`), models.DeviceTypeSmartHub},
	{regexp.MustCompile(`(?i)hue`), models.DeviceTypeLighting},
	{regexp.MustCompile(`(?i)philips.*hue`), models.DeviceTypeLighting},

	// Gaming consoles
	{regexp.MustCompile(`(?i)ps[0-9].*console`), models.DeviceTypeGaming},
	{regexp.MustCompile(`(?i)ps[0-9]`), models.DeviceTypeGaming},
	{regexp.MustCompile(`(?i)playstation`), models.DeviceTypeGaming},
	{regexp.MustCompile(`(?i)xbox`), models.DeviceTypeGaming},
	{regexp.MustCompile(`(?i)nintendo`), models.DeviceTypeGaming},

	// Printers
	{regexp.MustCompile(`(?i)printer`), models.DeviceTypePrinter},
	{regexp.MustCompile(`(?i)hp.*print`), models.DeviceTypePrinter},
	{regexp.MustCompile(`(?i)canon.*print`), models.DeviceTypePrinter},
	{regexp.MustCompile(`(?i)epson.*print`), models.DeviceTypePrinter},

	// IoT / embedded
	{regexp.MustCompile(`(?i)esp_`), models.DeviceTypeIoT},
	{regexp.MustCompile(`(?i)esp32`), models.DeviceTypeIoT},
	{regexp.MustCompile(`(?i)esp8266`), models.DeviceTypeIoT},
	{regexp.MustCompile(`(?i)raspberry`), models.DeviceTypeSBC},
	{regexp.MustCompile(`(?i)raspberrypi`), models.DeviceTypeSBC},

	// Mobile (medium specificity)
	{regexp.MustCompile(`(?i)(android|mobile|phone)`), models.DeviceTypePhone},
	{regexp.MustCompile(`(?i)tablet`), models.DeviceTypeTablet},

	// Computers (medium specificity)
	{regexp.MustCompile(`(?i)(macbook|laptop|notebook)`), models.DeviceTypeLaptop},
	{regexp.MustCompile(`(?i)(desktop|pc|workstation|imac)`), models.DeviceTypeDesktop},
	{regexp.MustCompile(`(?i)server`), models.DeviceTypeServer},

	// Network and misc (medium specificity)
	{regexp.MustCompile(`(?i)(router|gateway|switch|access.?point)`), models.DeviceTypeNetwork},
	{regexp.MustCompile(`(?i)(camera|cam)`), models.DeviceTypeCamera},
	{regexp.MustCompile(`(?i)(tv|television|smart.?tv)`), models.DeviceTypeSmartTV},
}

// vendorClassOSPatterns maps DHCP option 60 prefixes to operating
// systems. Anchored: the vendor class must start with the pattern.
var vendorClassOSPatterns = []osPattern{
	{regexp.MustCompile(`(?i)^msft`), "Windows"},
	{regexp.MustCompile(`(?i)^microsoft`), "Windows"},
	{regexp.MustCompile(`(?i)^android`), "Android"},
	{regexp.MustCompile(`(?i)^aaplbm`), "macOS"},
	{regexp.MustCompile(`(?i)^aaplphone`), "iOS"},
	{regexp.MustCompile(`(?i)^apple`), "iOS/macOS"},
	{regexp.MustCompile(`(?i)^linux`), "Linux"},
	{regexp.MustCompile(`(?i)^ubuntu`), "Linux"},
}

// fingerprintOSTable maps exact normalized option 55 lists to
// operating systems. Keys have separators but no spaces.
var fingerprintOSTable = map[string]string{
	// Windows
	"1,15,3,6,44,46,47,31,33,121,249,43":         "Windows 10/11",
	"1,15,3,6,44,46,47,31,33,249,43":             "Windows 10",
	"1,3,6,15,31,33,43,44,46,47,119,121,249,252": "Windows 7/8",

	// Apple
	"1,121,3,6,15,119,252,95,44,46": "iOS/macOS",
	"1,3,6,15,119,95,252,44,46,47":  "macOS",

	// Android
	"1,3,6,15,26,28,51,58,59,43": "Android",
	"1,3,6,12,15,26,28,51,58,59": "Android",

	// Linux
	"1,28,2,3,15,6,119,12,44,47,26,121,42": "Linux",
}

type vendorRule struct {
	vendor     string
	os         string
	deviceType models.DeviceType
}

// vendorRules maps manufacturer substrings to a default OS and device
// type.
var vendorRules = []vendorRule{
	{"apple", "iOS/macOS", models.DeviceTypeComputer},
	{"samsung", "Android", models.DeviceTypePhone},
	{"microsoft", "Windows", models.DeviceTypeDesktop},
	{"google", "Android", models.DeviceTypePhone},
	{"amazon", "Fire OS", models.DeviceTypeTablet},
	{"hp", "Windows", models.DeviceTypePrinter},
	{"dell", "Windows", models.DeviceTypeLaptop},
	{"netgear", "RouterOS/Linux", models.DeviceTypeNetwork},
	{"linksys", "RouterOS/Linux", models.DeviceTypeNetwork},
	{"cisco", "IOS", models.DeviceTypeNetwork},
	{"ubiquiti", "UniFi OS", models.DeviceTypeNetwork},
}

// iotSignaturePatterns identify IoT devices by hostname only. Vendor
// is deliberately ignored here: multi-product vendors like TP-Link
// make both routers and smart plugs, so vendor alone is insufficient.
var iotSignaturePatterns = []iotPattern{
	// Smart speakers
	{regexp.MustCompile(`(?i)(google.*home|nest.*mini|nest.*hub)`), "Google Assistant", models.DeviceTypeSmartSpeaker},
	{regexp.MustCompile(`(?i)(echo.*dot|echo.*show|echo.*studio|alexa.*device)`), "Fire OS", models.DeviceTypeSmartSpeaker},
	{regexp.MustCompile(`(?i)(homepod|apple.*speaker)`), "audioOS", models.DeviceTypeSmartSpeaker},

	// Smart cameras
	{regexp.MustCompile(`(?i)(ring.*camera|ring.*doorbell)`), "Linux", models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)(nest.*cam|google.*cam)`), "Linux", models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)(arlo.*cam|arlo.*camera)`), "Linux", models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)(wyze.*cam|wyze.*camera)`), "Linux", models.DeviceTypeSmartCamera},
	{regexp.MustCompile(`(?i)(blink.*cam|blink.*camera)`), "Linux", models.DeviceTypeSmartCamera},

	// Smart thermostats
	{regexp.MustCompile(`(?i)(nest.*thermostat|google.*thermostat)`), "Linux", models.DeviceTypeThermostat},
	{regexp.MustCompile(`(?i)ecobee`), "Linux", models.DeviceTypeThermostat},
	{regexp.MustCompile(`(?i)honeywell.*thermostat`), "Linux", models.DeviceTypeThermostat},

	// Smart plugs
	{regexp.MustCompile(`(?i)(kasa.*plug|smart.*plug|tp.*link.*plug)`), "Linux", models.DeviceTypeSmartPlug},
	{regexp.MustCompile(`(?i)(wemo.*plug|belkin.*plug)`), "Linux", models.DeviceTypeSmartPlug},
	{regexp.MustCompile(`(?i)(amazon.*plug|alexa.*plug)`), "Linux", models.DeviceTypeSmartPlug},

	// Smart lighting
	{regexp.MustCompile(`(?i)(philips.*hue|hue.*bridge|hue.*bulb)`), "Linux", models.DeviceTypeLighting},
	{regexp.MustCompile(`(?i)(lifx.*bulb|lifx.*strip)`), "Linux", models.DeviceTypeLighting},

	// Development boards
	{regexp.MustCompile(`(?i)(esp.*[0-9]+|esp_[0-9]+|arduino.*[0-9]+)`), "Embedded OS", models.DeviceTypeIoT},
	{regexp.MustCompile(`(?i)(nodemcu|wemos|lolin)`), "Embedded OS", models.DeviceTypeIoT},
}

// highSpecificityHostnamePatterns lock the hostname opinion when
// matched: the hostname names the device class outright.
var highSpecificityHostnamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)iphone`),
	regexp.MustCompile(`(?i)ipad`),
	regexp.MustCompile(`(?i)galaxy`),
	regexp.MustCompile(`(?i)pixel`),
	regexp.MustCompile(`(?i)ring.*camera`),
	regexp.MustCompile(`(?i)ring.*doorbell`),
	regexp.MustCompile(`(?i)nest.*thermostat`),
	regexp.MustCompile(`(?i)chromecast`),
	regexp.MustCompile(`(?i)firetv`),
	regexp.MustCompile(`(?i)fire.*tv`),
	regexp.MustCompile(`(?i)ps[0-9]`),
	regexp.MustCompile(`(?i)xbox`),
	regexp.MustCompile(`(?i)printer`),
	regexp.MustCompile(`(?i)hp.*print`),
	regexp.MustCompile(`(?i)echo`),
	regexp.MustCompile(`(?i)alexa`),
	regexp.MustCompile(`(?i)smart.*tv`),
	regexp.MustCompile(`(?i)smart-tv`),
	regexp.MustCompile(`(?i)tv-`),
	regexp.MustCompile(`(?i)-tv`),
}

// Hostname override patterns for hostname-vendor conflict resolution.
// First matching entry with a differing device type wins.
type conflictPattern struct {
	deviceType models.DeviceType
	tokens     []string
}

var conflictDevicePatterns = []conflictPattern{
	{models.DeviceTypeSmartCamera, []string{"ring", "nest-cam", "arlo", "wyze", "blink", "eufy-cam", "camera", "doorbell"}},
	{models.DeviceTypeSmartTV, []string{"roku", "firetv", "fire-tv", "appletv", "chromecast", "smarttv", "smart-tv", "smart_tv", "tv-", "-tv", "samsung-tv", "lg-tv", "sony-tv"}},
	{models.DeviceTypeGaming, []string{"ps4", "ps5", "xbox", "nintendo", "switch", "playstation", "console"}},
	{models.DeviceTypeSmartSpeaker, []string{"echo", "alexa", "googlehome", "homepod", "nest-mini", "nest-hub"}},
	{models.DeviceTypePhone, []string{"iphone", "galaxy", "pixel", "oneplus", "huawei", "android-phone"}},
	{models.DeviceTypeStreaming, []string{"roku", "firetv", "chromecast", "nvidia-shield", "apple-tv", "streaming"}},
	{models.DeviceTypePrinter, []string{"printer", "print", "hp-", "canon-", "epson-", "brother-"}},
	{models.DeviceTypeThermostat, []string{"thermostat", "nest-therm", "ecobee"}},
	{models.DeviceTypeIoT, []string{"esp", "arduino", "sensor", "smart-", "iot-"}},
	{models.DeviceTypeNetwork, []string{"router", "gateway", "switch", "access-point", "netgear", "linksys"}},
}

// Vendor context tables for hardware manufacturer analysis.

var pureNetworkingVendors = []string{"zyxel", "ubiquiti", "mikrotik", "juniper", "aruba", "meraki"}

// multiProductVendor disambiguates vendors that ship both networking
// gear and IoT devices using the DHCP vendor class.
type multiProductVendor struct {
	vendor               string
	networkingIndicators []string
	iotIndicators        []string
	defaultType          models.DeviceType
}

var multiProductVendors = []multiProductVendor{
	{"tp-link", []string{"udhcp", "busybox", "dhcpcd", "openwrt"}, []string{"kasa", "smart", "plug", "bulb"}, models.DeviceTypeNetwork},
	{"netgear", []string{"udhcp", "busybox", "dhcpcd"}, []string{"arlo", "orbi"}, models.DeviceTypeNetwork},
	{"d-link", []string{"udhcp", "busybox", "dhcpcd"}, []string{"dcs", "camera"}, models.DeviceTypeNetwork},
	{"belkin", []string{"udhcp", "busybox"}, []string{"wemo", "smart"}, models.DeviceTypeNetwork},
	{"cisco", []string{"ios", "nx-os", "asa"}, nil, models.DeviceTypeNetwork},
}

// componentManufacturer covers chip and board makers whose OUIs show
// up inside many kinds of devices.
type componentManufacturer struct {
	vendor            string
	networkIndicators []string
	mobileIndicators  []string
	defaultType       models.DeviceType
}

var componentManufacturers = []componentManufacturer{
	{"intel", []string{"dhcpcd", "pxe", "amt"}, []string{"android-dhcp"}, models.DeviceTypeComputer},
	{"giga-byte", nil, nil, models.DeviceTypeComputer},
	{"micro-star", nil, nil, models.DeviceTypeComputer},
	{"asrock", nil, nil, models.DeviceTypeComputer},
	{"nvidia", nil, nil, models.DeviceTypeComputer},
	{"amd", nil, nil, models.DeviceTypeComputer},
	{"realtek", nil, nil, models.DeviceTypeComputer},
	{"broadcom", nil, nil, models.DeviceTypeComputer},
	{"qualcomm", nil, nil, models.DeviceTypePhone},
	{"mediatek", nil, nil, models.DeviceTypePhone},
}

// indicatorSet is a vendor-class token list that maps to a device
// type when any token matches.
type indicatorSet struct {
	tokens     []string
	deviceType models.DeviceType
}

// deviceManufacturer covers primary device makers; indicator sets are
// checked in order before falling back to the vendor default.
type deviceManufacturer struct {
	vendor      string
	indicators  []indicatorSet
	defaultType models.DeviceType
}

var deviceManufacturers = []deviceManufacturer{
	{"apple", []indicatorSet{
		{[]string{"iphone", "ios-dhcp"}, models.DeviceTypePhone},
		{[]string{"dhcpcd", "macos"}, models.DeviceTypeComputer},
	}, models.DeviceTypeComputer},
	{"samsung", []indicatorSet{
		{[]string{"android-dhcp", "galaxy"}, models.DeviceTypePhone},
		{[]string{"tizen", "smart-tv"}, models.DeviceTypeSmartTV},
	}, models.DeviceTypePhone},
	{"google", []indicatorSet{
		{[]string{"android-dhcp", "pixel"}, models.DeviceTypePhone},
		{[]string{"nest", "chromecast"}, models.DeviceTypeIoT},
	}, models.DeviceTypePhone},
	{"amazon", []indicatorSet{
		{[]string{"alexa", "echo", "fire"}, models.DeviceTypeIoT},
	}, models.DeviceTypeIoT},
	{"microsoft", nil, models.DeviceTypeComputer},
	{"dell", nil, models.DeviceTypeComputer},
	{"hp", nil, models.DeviceTypeComputer},
	{"lenovo", nil, models.DeviceTypeComputer},
	{"sony", []indicatorSet{
		{[]string{"playstation", "ps4", "ps5"}, models.DeviceTypeGaming},
	}, models.DeviceTypeGaming},
	{"nintendo", nil, models.DeviceTypeGaming},
	{"xiaomi", nil, models.DeviceTypePhone},
	{"huawei", nil, models.DeviceTypePhone},
	{"oneplus", nil, models.DeviceTypePhone},
}

var (
	virtualVendors  = []string{"vmware", "virtualbox", "parallels", "xen", "kvm"}
	devBoardVendors = []string{"raspberry pi", "arduino", "espressif", "adafruit", "sparkfun"}
	printerVendors  = []string{"hp inc", "canon", "epson", "brother", "lexmark", "xerox"}
)

// Vendor class context tokens (DHCP option 60 analysis).
var (
	embeddedClientTokens     = []string{"udhcp", "busybox", "busybox-dhcp", "dropbear"}
	embeddedNetworkVendors   = []string{"tp-link", "zyxel", "netgear", "d-link", "linksys", "belkin", "tenda"}
	linuxClientTokens        = []string{"dhcpcd", "dhclient", "networkmanager", "systemd"}
	sbcVendorTokens          = []string{"raspberry pi", "espressif"}
	linuxNetworkVendorTokens = []string{"ubiquiti", "mikrotik"}
	androidClientTokens      = []string{"android-dhcp", "android_dhcp"}
	componentVendorTokens    = []string{"intel", "realtek", "broadcom", "nvidia", "amd"}
	mobileVendorTokens       = []string{"samsung", "google", "huawei", "xiaomi", "oneplus", "lg electronics"}
	appleClientTokens        = []string{"apple", "aaplbm", "aaplphone", "ios-dhcp"}
	windowsClientTokens      = []string{"msft", "microsoft"}
	gamingClientTokens       = []string{"playstation", "xbox", "nintendo"}
	iotClientTokens          = []string{"esp32", "esp8266", "arduino", "micropython", "tasmota", "nodemcu"}
	streamingClientTokens    = []string{"roku", "chromecast", "firetv", "appletv"}
	printerClientTokens      = []string{"hp-print", "canon-print", "epson-print", "brother-print"}
	networkOSTokens          = []string{"openwrt", "dd-wrt", "tomato", "pfsense", "mikrotik"}
	vmClientTokens           = []string{"vmware", "virtualbox", "xen", "kvm", "hyper-v"}
	genericClientTokens      = []string{"dhcp", "client", "unknown"}
)
