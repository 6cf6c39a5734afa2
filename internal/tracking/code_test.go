package tracking

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gholaman/municipal-portal/internal/domain"
)

var codePattern = regexp.MustCompile(`^REQ-[A-Z0-9]+-[A-Z0-9]+-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{4}$`)

func TestGenerateFormat(t *testing.T) {
	gen := NewGenerator()

	for _, serviceType := range domain.KnownServiceTypes {
		t.Run(string(serviceType), func(t *testing.T) {
			code := gen.Generate(serviceType)

			if !codePattern.MatchString(code) {
				t.Errorf("code %q does not match expected format", code)
			}
			if segments := strings.Split(code, "-"); len(segments) != 4 {
				t.Errorf("expected 4 segments, got %d in %q", len(segments), code)
			}
		})
	}
}

func TestGenerateShortCodes(t *testing.T) {
	gen := NewGenerator()

	tests := []struct {
		serviceType domain.ServiceType
		prefix      string
	}{
		{domain.ServiceComplaint137, "REQ-137-"},
		{domain.ServiceBuildingPermit, "REQ-BLD-"},
		{domain.ServicePayment, "REQ-PAY-"},
		{domain.ServiceType("unknown_type"), "REQ-UNK-"},
		{domain.ServiceType("x"), "REQ-X-"},
	}

	for _, tt := range tests {
		t.Run(string(tt.serviceType), func(t *testing.T) {
			code := gen.Generate(tt.serviceType)
			if !strings.HasPrefix(code, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, code)
			}
		})
	}
}

func TestGenerateShortCodeFallbackMultibyte(t *testing.T) {
	gen := NewGenerator()

	// The fallback truncates by rune, so a non-ASCII type name must not be
	// split mid-character.
	code := gen.Generate(domain.ServiceType("آبرسانی"))
	if !utf8.ValidString(code) {
		t.Fatalf("code %q is not valid UTF-8", code)
	}
	wantPrefix := "REQ-" + strings.ToUpper("آبر") + "-"
	if !strings.HasPrefix(code, wantPrefix) {
		t.Errorf("expected prefix %q, got %q", wantPrefix, code)
	}
}

func TestGenerateRandomSegmentAlphabet(t *testing.T) {
	gen := NewGenerator()

	for i := 0; i < 200; i++ {
		code := gen.Generate(domain.ServiceComplaint137)
		segments := strings.Split(code, "-")
		random := segments[len(segments)-1]

		if len(random) != 4 {
			t.Fatalf("random segment %q not 4 chars in %q", random, code)
		}
		if strings.ContainsAny(random, "0OI1L") {
			t.Fatalf("random segment %q contains a confusable glyph", random)
		}
	}
}

func TestGenerateTimestampSegment(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := NewGeneratorWith(func() time.Time { return fixed }, func(n int) int { return 0 })

	code := gen.Generate(domain.ServicePayment)
	want := "REQ-PAY-" + strings.ToUpper(strconv.FormatInt(fixed.UnixMilli(), 36)) + "-AAAA"
	if code != want {
		t.Errorf("expected %q, got %q", want, code)
	}
}

// Uniqueness is probabilistic, not guaranteed: the random segment is the
// only defense within a single millisecond. 100 codes in quick succession
// colliding is astronomically unlikely.
func TestGenerateDistinctInQuickSuccession(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		code := gen.Generate(domain.ServiceComplaint137)
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q after %d generations", code, i)
		}
		seen[code] = struct{}{}
	}
}
