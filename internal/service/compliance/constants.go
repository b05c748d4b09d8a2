package compliance

import "time"

// expiryWarningWindow is how close to expiry a policy may run before the
// verification is flagged for review.
const expiryWarningWindow = 30 * 24 * time.Hour

// licensedInsurers is the fixed allow-list of licensed general insurers.
// Lookup is by case-insensitive substring of the extracted insurer name, so
// "QBE Insurance (Australia) Limited" resolves to the "qbe" entry. The list
// is maintained as data: new licensees are appended here.
var licensedInsurers = []string{
	"qbe",
	"allianz",
	"cgu",
	"zurich",
	"vero",
	"chubb",
	"hollard",
	"icare",
	"suncorp",
	"aami",
	"gio",
	"aig",
	"axa",
	"liberty",
	"berkshire hathaway",
	"allied world",
	"lloyd's",
	"lloyds",
}
