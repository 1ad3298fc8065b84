package processor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go-roadwatch/config"
	"go-roadwatch/types"
)

// Submission is the raw ingestion payload as bound from the multipart form.
// Numeric fields arrive as strings; the optional detection metadata tolerates
// unparseable values (they default to zero), the required fields do not.
type Submission struct {
	ProvinceCode string `form:"kode_provinsi" validate:"required"`
	ProvinceName string `form:"nama_provinsi" validate:"required"`
	RegencyCode  string `form:"kode_kabupaten_kota" validate:"required"`
	RegencyName  string `form:"nama_kabupaten_kota" validate:"required"`
	DistrictCode string `form:"kode_kecamatan" validate:"required"`
	DistrictName string `form:"nama_kecamatan" validate:"required"`
	Latitude     string `form:"latitude" validate:"required"`
	Longitude    string `form:"longitude" validate:"required"`
	DamageClass  string `form:"damage_class" validate:"required"`
	Confidence   string `form:"confidence" validate:"required"`

	ImageSize      string `form:"image_size"`
	ImageWidth     string `form:"image_width"`
	ImageHeight    string `form:"image_height"`
	ProcessingTime string `form:"processing_time"`
}

// FieldError identifies the offending field so the caller can correct the
// request.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// formFieldName maps the struct field back to its wire name for error messages.
var formFieldName = map[string]string{
	"ProvinceCode": "kode_provinsi",
	"ProvinceName": "nama_provinsi",
	"RegencyCode":  "kode_kabupaten_kota",
	"RegencyName":  "nama_kabupaten_kota",
	"DistrictCode": "kode_kecamatan",
	"DistrictName": "nama_kecamatan",
	"Latitude":     "latitude",
	"Longitude":    "longitude",
	"DamageClass":  "damage_class",
	"Confidence":   "confidence",
}

var validate = validator.New()

// BuildReport validates a submission and maps it to a canonical DamageReport.
// The returned report has no ID yet; the store assigns one at write time.
func BuildReport(sub Submission, bounds config.GeoBounds) (types.DamageReport, error) {
	if err := validate.Struct(sub); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field := verrs[0].Field()
			if wire, ok := formFieldName[field]; ok {
				field = wire
			}
			return types.DamageReport{}, FieldError{Field: field, Reason: "is required"}
		}
		return types.DamageReport{}, err
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(sub.Latitude), 64)
	if err != nil {
		return types.DamageReport{}, FieldError{Field: "latitude", Reason: "must be a number"}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(sub.Longitude), 64)
	if err != nil {
		return types.DamageReport{}, FieldError{Field: "longitude", Reason: "must be a number"}
	}
	if lat < bounds.MinLat || lat > bounds.MaxLat {
		return types.DamageReport{}, FieldError{Field: "latitude", Reason: "outside deployment bounds"}
	}
	if lon < bounds.MinLon || lon > bounds.MaxLon {
		return types.DamageReport{}, FieldError{Field: "longitude", Reason: "outside deployment bounds"}
	}

	confidence, err := strconv.ParseFloat(strings.TrimSpace(sub.Confidence), 64)
	if err != nil {
		return types.DamageReport{}, FieldError{Field: "confidence", Reason: "must be a number"}
	}
	if confidence < 0 || confidence > 100 {
		return types.DamageReport{}, FieldError{Field: "confidence", Reason: "must be between 0 and 100"}
	}

	return types.DamageReport{
		ProvinceCode: strings.TrimSpace(sub.ProvinceCode),
		ProvinceName: strings.TrimSpace(sub.ProvinceName),
		RegencyCode:  NormalizeRegencyCode(sub.RegencyCode),
		RegencyName:  strings.TrimSpace(sub.RegencyName),
		DistrictCode: strings.TrimSpace(sub.DistrictCode),
		DistrictName: strings.TrimSpace(sub.DistrictName),
		Latitude:     lat,
		Longitude:    lon,
		Severity:     MapSeverity(sub.DamageClass),
		DamageClass:  sub.DamageClass,
		Confidence:   confidence,
		ImageSize:    strings.TrimSpace(sub.ImageSize),
		// Optional numeric metadata: unparseable values become zero on purpose.
		ImageWidth:     lenientInt(sub.ImageWidth),
		ImageHeight:    lenientInt(sub.ImageHeight),
		ProcessingTime: lenientFloat(sub.ProcessingTime),
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// MapSeverity converts the raw detector class label to the canonical severity.
// Ordered prefix rules: labels starting with "ringan" are light, "sedang" are
// moderate, and anything else, including labels the detector invents later,
// lands in the severe bucket. Total and deterministic; applied once at
// ingestion and never re-run against stored reports.
func MapSeverity(rawLabel string) types.Severity {
	label := strings.ToLower(strings.TrimSpace(rawLabel))
	switch {
	case strings.HasPrefix(label, "ringan"):
		return types.SeverityLight
	case strings.HasPrefix(label, "sedang"):
		return types.SeverityModerate
	default:
		return types.SeveritySevere
	}
}

// NormalizeRegencyCode strips separator punctuation from a kabupaten code.
// Upstream sources format the same code as "3204" or "32.04".
func NormalizeRegencyCode(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), ".", "")
}

func lenientInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func lenientFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
