package types

import "time"

// Severity is the canonical damage classification assigned at ingestion.
// The Indonesian values are kept as stored in the road_damages collection.
type Severity string

const (
	SeverityLight    Severity = "ringan"
	SeverityModerate Severity = "sedang"
	SeveritySevere   Severity = "berat"
)

// Valid reports whether s is one of the three canonical severities.
func (s Severity) Valid() bool {
	return s == SeverityLight || s == SeverityModerate || s == SeveritySevere
}

// Granularity selects the administrative level of an aggregation or lookup.
type Granularity string

const (
	GranularityRegency  Granularity = "regency"
	GranularityDistrict Granularity = "district"
)

// ImageRef points at an uploaded damage photo in object storage.
type ImageRef struct {
	URL  string `firestore:"image_url" json:"image_url"`
	Path string `firestore:"image_path" json:"image_path"`
}

// DamageReport is one observed instance of road damage. Field names mirror the
// road_damages document schema so existing data and the dashboard stay compatible.
// Reports are immutable once created and are never deleted.
type DamageReport struct {
	ID           int    `firestore:"id" json:"id"`
	ProvinceCode string `firestore:"kode_provinsi" json:"kode_provinsi"`
	ProvinceName string `firestore:"nama_provinsi" json:"nama_provinsi"`
	RegencyCode  string `firestore:"kode_kabupaten_kota" json:"kode_kabupaten_kota"`
	RegencyName  string `firestore:"nama_kabupaten_kota" json:"nama_kabupaten_kota"`
	DistrictCode string `firestore:"kode_kecamatan" json:"kode_kecamatan"`
	DistrictName string `firestore:"nama_kecamatan" json:"nama_kecamatan"`

	Latitude  float64  `firestore:"latitude" json:"latitude"`
	Longitude float64  `firestore:"longitude" json:"longitude"`
	Severity  Severity `firestore:"kerusakan" json:"kerusakan"`

	// Detection metadata, carried for traceability. Severity is derived from
	// DamageClass once at ingestion and never recomputed from it.
	DamageClass    string  `firestore:"damage_class,omitempty" json:"damage_class,omitempty"`
	Confidence     float64 `firestore:"confidence,omitempty" json:"confidence,omitempty"`
	ImageSize      string  `firestore:"image_size,omitempty" json:"image_size,omitempty"`
	ImageWidth     int     `firestore:"image_width,omitempty" json:"image_width,omitempty"`
	ImageHeight    int     `firestore:"image_height,omitempty" json:"image_height,omitempty"`
	ProcessingTime float64 `firestore:"processing_time,omitempty" json:"processing_time,omitempty"`

	ImageURL  string    `firestore:"image_url,omitempty" json:"image_url,omitempty"`
	ImagePath string    `firestore:"image_path,omitempty" json:"image_path,omitempty"`
	Address   string    `firestore:"alamat,omitempty" json:"alamat,omitempty"`
	CreatedAt time.Time `firestore:"created_at,omitempty" json:"created_at,omitempty"`
}
