package vendordb

// builtinOUIs is the fallback vendor table used when no CSV overlay is
// configured. Keys are bare uppercase 6-hex-digit OUI prefixes. The
// selection skews toward consumer devices that show up in home and
// small-office DHCP logs.
var builtinOUIs = map[string]string{
	// Apple
	"000393": "Apple, Inc.",
	"000502": "Apple, Inc.",
	"000A95": "Apple, Inc.",
	"000D93": "Apple, Inc.",
	"0010FA": "Apple, Inc.",
	"001124": "Apple, Inc.",
	"0013E8": "Apple, Inc.",
	"001451": "Apple, Inc.",
	"0016CB": "Apple, Inc.",
	"0017F2": "Apple, Inc.",
	"0019E3": "Apple, Inc.",
	"001B63": "Apple, Inc.",
	"001EC2": "Apple, Inc.",
	"001F5B": "Apple, Inc.",
	"0021E9": "Apple, Inc.",
	"002241": "Apple, Inc.",
	"002312": "Apple, Inc.",
	"0023DF": "Apple, Inc.",
	"002436": "Apple, Inc.",
	"002500": "Apple, Inc.",
	"00254B": "Apple, Inc.",
	"0025BC": "Apple, Inc.",
	"002608": "Apple, Inc.",
	"00264A": "Apple, Inc.",
	"0026B0": "Apple, Inc.",
	"0026BB": "Apple, Inc.",
	"2CF05D": "Apple, Inc.",
	"3C0754": "Apple, Inc.",
	"881FA1": "Apple, Inc.",

	// Samsung
	"0012FB": "Samsung Electronics Co.,Ltd",
	"001599": "Samsung Electronics Co.,Ltd",
	"001632": "Samsung Electronics Co.,Ltd",
	"0017C9": "Samsung Electronics Co.,Ltd",
	"0018AF": "Samsung Electronics Co.,Ltd",
	"001A8A": "Samsung Electronics Co.,Ltd",
	"001B98": "Samsung Electronics Co.,Ltd",
	"001D25": "Samsung Electronics Co.,Ltd",
	"001E7D": "Samsung Electronics Co.,Ltd",
	"002119": "Samsung Electronics Co.,Ltd",
	"002339": "Samsung Electronics Co.,Ltd",
	"002454": "Samsung Electronics Co.,Ltd",
	"5CF938": "Samsung Electronics Co.,Ltd",
	"448500": "Samsung Electronics Co.,Ltd",

	// Google
	"001A11": "Google, Inc.",
	"001132": "Google, Inc.",
	"F4F5E8": "Google, Inc.",
	"DAA119": "Google, Inc.",

	// Raspberry Pi
	"B827EB": "Raspberry Pi Foundation",
	"DCA632": "Raspberry Pi Foundation",
	"E45F01": "Raspberry Pi Foundation",

	// Nintendo
	"04A151": "Nintendo Co., Ltd.",
	"0009BF": "Nintendo Co., Ltd.",
	"001656": "Nintendo Co., Ltd.",
	"0017AB": "Nintendo Co., Ltd.",
	"00191D": "Nintendo Co., Ltd.",
	"001AE9": "Nintendo Co., Ltd.",
	"001B7A": "Nintendo Co., Ltd.",
	"001CBE": "Nintendo Co., Ltd.",
	"001E35": "Nintendo Co., Ltd.",
	"001F32": "Nintendo Co., Ltd.",
	"002147": "Nintendo Co., Ltd.",
	"0022AA": "Nintendo Co., Ltd.",
	"00241E": "Nintendo Co., Ltd.",
	"002444": "Nintendo Co., Ltd.",
	"0025A0": "Nintendo Co., Ltd.",

	// Amazon
	"8C8590": "Amazon Technologies Inc.",
	"00FC8B": "Amazon Technologies Inc.",
	"34D270": "Amazon Technologies Inc.",
	"38F73D": "Amazon Technologies Inc.",
	"4CEFC0": "Amazon Technologies Inc.",
	"50DCE7": "Amazon Technologies Inc.",
	"6837E9": "Amazon Technologies Inc.",
	"6C5697": "Amazon Technologies Inc.",
	"747548": "Amazon Technologies Inc.",
	"84D6D0": "Amazon Technologies Inc.",
	"AC63BE": "Amazon Technologies Inc.",
	"B07B25": "Amazon Technologies Inc.",
	"CCF411": "Amazon Technologies Inc.",
	"F0272D": "Amazon Technologies Inc.",
	"FC65DE": "Amazon Technologies Inc.",

	// Philips
	"001788": "Philips Electronics Nederland B.V.",

	// ARRIS cable modems and gateways
	"50C7BF": "ARRIS Group, Inc.",
	"7845C4": "ARRIS Group, Inc.",
}
