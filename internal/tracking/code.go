// Package tracking produces the human-shareable codes citizens use to
// follow up on a submitted request.
package tracking

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// codeAlphabet excludes glyphs that are easy to misread or mistype
// when a citizen copies the code by hand (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const randomSegmentLen = 4

// serviceShortCodes keeps codes self-describing for support staff.
var serviceShortCodes = map[domain.ServiceType]string{
	domain.ServiceComplaint137:   "137",
	domain.ServiceBuildingPermit: "BLD",
	domain.ServicePayment:        "PAY",
}

// Generator builds tracking codes of the form
// REQ-{SHORT}-{TIMESTAMP}-{RANDOM}. The timestamp segment is the current
// wall clock in milliseconds, base-36, upper-cased; the random segment is
// the primary defense against two submissions landing in the same
// millisecond. Generation cannot fail and performs no I/O.
type Generator struct {
	now  func() time.Time
	intN func(int) int
}

// NewGenerator returns a generator backed by the system clock and the
// process-wide random source.
func NewGenerator() *Generator {
	return &Generator{now: time.Now, intN: rand.IntN}
}

// NewGeneratorWith injects the clock and random source, for deterministic tests.
func NewGeneratorWith(now func() time.Time, intN func(int) int) *Generator {
	return &Generator{now: now, intN: intN}
}

// Generate returns a fresh tracking code for the given service type.
// Unknown service types fall back to the first three characters of the
// type name, upper-cased.
func (g *Generator) Generate(serviceType domain.ServiceType) string {
	shortCode, ok := serviceShortCodes[serviceType]
	if !ok {
		shortCode = strings.ToUpper(truncate(string(serviceType), 3))
	}

	timestamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	var random strings.Builder
	random.Grow(randomSegmentLen)
	for i := 0; i < randomSegmentLen; i++ {
		random.WriteByte(codeAlphabet[g.intN(len(codeAlphabet))])
	}

	return "REQ-" + shortCode + "-" + timestamp + "-" + random.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
