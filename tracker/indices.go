package tracker

// Index pairs a display name with the primary source's symbol
type Index struct {
	Name   string `mapstructure:"name"`
	Symbol string `mapstructure:"symbol"`
}

// DefaultIndices is the tracked table, in report order
var DefaultIndices = []Index{
	{"NIFTY 50", "^NSEI"},
	{"NIFTY NEXT 50", "^NSMIDCP"},
	{"NIFTY 100", "^CNX100"},
	{"NIFTY 200", "^CNX200"},
	{"NIFTY 500", "^CNX500"},
	{"NIFTY MIDCAP 50", "^NSEMDCP50"},
	{"NIFTY MIDCAP 100", "^CNXMID"},
	{"NIFTY BANK", "^NSEBANK"},
	{"NIFTY IT", "^CNXIT"},
	{"NIFTY FMCG", "^CNXFMCG"},
	{"NIFTY AUTO", "^CNXAUTO"},
	{"NIFTY FINANCIAL SERVICES", "^CNXFIN"},
	{"NIFTY MEDIA", "^CNXMEDIA"},
	{"NIFTY PHARMA", "^CNXPHARMA"},
	{"NIFTY METAL", "^CNXMETAL"},
	{"NIFTY REALTY", "^CNXREALTY"},
	{"NIFTY SMALLCAP 100", "^CNXSC"},
	{"NIFTY ENERGY", "^CNXENERGY"},
	{"NIFTY INFRASTRUCTURE", "^CNXINFRA"},
	{"NIFTY PSE", "^CNXPSE"},
	{"NIFTY COMMODITIES", "^CNXCMDT"},
	{"NIFTY CONSUMPTION", "^CNXCONSUM"},
	{"NIFTY SERV SECTOR", "CNXSERVICE"},
	{"NIFTY DIV OPS 50", "^CNXDIVOP"},
}
