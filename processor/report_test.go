package processor

import (
	"errors"
	"testing"

	"go-roadwatch/config"
	"go-roadwatch/types"
)

var testBounds = config.GeoBounds{MinLat: -8, MaxLat: -5.5, MinLon: 106, MaxLon: 109}

func validSubmission() Submission {
	return Submission{
		ProvinceCode: "32",
		ProvinceName: "Jawa Barat",
		RegencyCode:  "3204",
		RegencyName:  "Kabupaten Bandung",
		DistrictCode: "320401",
		DistrictName: "Cileunyi",
		Latitude:     "-6.9",
		Longitude:    "107.6",
		DamageClass:  "Berat",
		Confidence:   "92.5",
	}
}

func TestMapSeverity(t *testing.T) {
	tests := []struct {
		label string
		want  types.Severity
	}{
		{"Ringan", types.SeverityLight},
		{"ringan", types.SeverityLight},
		{"RINGAN", types.SeverityLight},
		{"ringan retak", types.SeverityLight},
		{"Sedang", types.SeverityModerate},
		{"sedang berlubang", types.SeverityModerate},
		{"Berat", types.SeveritySevere},
		// Unrecognized labels fall into the severe bucket: the mapping is
		// total, nothing is rejected at this layer.
		{"Unknown", types.SeveritySevere},
		{"", types.SeveritySevere},
		{"pothole", types.SeveritySevere},
	}

	for _, tt := range tests {
		if got := MapSeverity(tt.label); got != tt.want {
			t.Errorf("MapSeverity(%q) = %q, want %q", tt.label, got, tt.want)
		}
		// Deterministic: a second call gives the same answer.
		if got := MapSeverity(tt.label); got != tt.want {
			t.Errorf("MapSeverity(%q) not deterministic", tt.label)
		}
	}
}

func TestNormalizeRegencyCode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"3204", "3204"},
		{"32.04", "3204"},
		{"32.04.", "3204"},
		{" 3204 ", "3204"},
	}
	for _, tt := range tests {
		if got := NormalizeRegencyCode(tt.in); got != tt.want {
			t.Errorf("NormalizeRegencyCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildReportValid(t *testing.T) {
	report, err := BuildReport(validSubmission(), testBounds)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	if report.Severity != types.SeveritySevere {
		t.Errorf("severity = %q, want berat", report.Severity)
	}
	if report.Latitude != -6.9 || report.Longitude != 107.6 {
		t.Errorf("coordinates = (%v, %v)", report.Latitude, report.Longitude)
	}
	if report.ID != 0 {
		t.Errorf("ID must be unassigned before insert, got %d", report.ID)
	}
	if report.DamageClass != "Berat" {
		t.Errorf("raw label must be preserved, got %q", report.DamageClass)
	}
}

func TestBuildReportMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{"province code", func(s *Submission) { s.ProvinceCode = "" }, "kode_provinsi"},
		{"regency code", func(s *Submission) { s.RegencyCode = "" }, "kode_kabupaten_kota"},
		{"district name", func(s *Submission) { s.DistrictName = "" }, "nama_kecamatan"},
		{"latitude", func(s *Submission) { s.Latitude = "" }, "latitude"},
		{"damage class", func(s *Submission) { s.DamageClass = "" }, "damage_class"},
		{"confidence", func(s *Submission) { s.Confidence = "" }, "confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			_, err := BuildReport(sub, testBounds)
			var fieldErr FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("err = %v, want FieldError", err)
			}
			if fieldErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", fieldErr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildReportCoordinateBounds(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		ok       bool
		field    string
	}{
		{"inside bounds", "-6.9", "107.6", true, ""},
		{"latitude too far south", "-9", "107.6", false, "latitude"},
		{"longitude too far east", "-6.9", "110", false, "longitude"},
		{"latitude not a number", "abc", "107.6", false, "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Latitude = tt.lat
			sub.Longitude = tt.lon

			_, err := BuildReport(sub, testBounds)
			if tt.ok {
				if err != nil {
					t.Fatalf("BuildReport: %v", err)
				}
				return
			}

			var fieldErr FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("err = %v, want FieldError", err)
			}
			if fieldErr.Field != tt.field {
				t.Errorf("field = %q, want %q", fieldErr.Field, tt.field)
			}
		})
	}
}

func TestBuildReportLenientMetadata(t *testing.T) {
	sub := validSubmission()
	sub.ImageWidth = "not-a-number"
	sub.ImageHeight = "480"
	sub.ProcessingTime = "??"

	report, err := BuildReport(sub, testBounds)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	// Unparseable optional metadata becomes zero rather than an error.
	if report.ImageWidth != 0 {
		t.Errorf("ImageWidth = %d, want 0", report.ImageWidth)
	}
	if report.ImageHeight != 480 {
		t.Errorf("ImageHeight = %d, want 480", report.ImageHeight)
	}
	if report.ProcessingTime != 0 {
		t.Errorf("ProcessingTime = %v, want 0", report.ProcessingTime)
	}
}

func TestBuildReportConfidenceRange(t *testing.T) {
	sub := validSubmission()
	sub.Confidence = "150"

	_, err := BuildReport(sub, testBounds)
	var fieldErr FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "confidence" {
		t.Fatalf("err = %v, want confidence FieldError", err)
	}
}

func TestBuildReportNormalizesRegencyCode(t *testing.T) {
	sub := validSubmission()
	sub.RegencyCode = "32.04"

	report, err := BuildReport(sub, testBounds)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.RegencyCode != "3204" {
		t.Errorf("RegencyCode = %q, want 3204", report.RegencyCode)
	}
}
