// Package delivery caches the per-route delivery dataset downloaded
// from the office server and tracks which company the driver is
// currently viewing.
//
// The cache is a plain JSON file so a route's deliveries survive an
// app restart and remain browsable with no signal. A download wholly
// replaces the cache for the route it was fetched for.
package delivery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// BladeDetails carries the per-item service counts the shop fills in.
// The server sends them as strings, sometimes "None" or empty; use
// Count to read them.
type BladeDetails struct {
	ReceivedQty string `json:"received_qty"`
	ShippedQty  string `json:"shipped_qty"`
	BackOrder   string `json:"back_order"`
	Hammer      string `json:"hammer"`
	ReTipped    string `json:"re_tipped"`
	NewTipNo    string `json:"new_tip_no"`
	NoService   string `json:"no_service"`
}

// Count normalizes a raw service count for display: empty and "None"
// become "0".
func Count(raw string) string {
	if raw == "" || raw == "None" {
		return "0"
	}
	return raw
}

// Item is a single outstanding delivery for a company.
type Item struct {
	PONumber         string       `json:"po_number"`
	Description      string       `json:"description"`
	Quantity         string       `json:"quantity"`
	PickupDate       string       `json:"pickup_date"`
	ExpectedDelivery string       `json:"expected_delivery"`
	BladeDetails     BladeDetails `json:"blade_details"`
}

// Dataset is the cached download for one route: company name to the
// items due for delivery there.
type Dataset struct {
	Route     string            `json:"route"`
	FetchedAt string            `json:"fetched_at"`
	Companies map[string][]Item `json:"companies"`
}

// Empty reports whether the dataset holds no deliveries at all.
func (d Dataset) Empty() bool {
	return len(d.Companies) == 0
}

// CompanyNames returns the dataset's companies in sorted order. The
// cursor indexes into this list, so the order must be stable.
func (d Dataset) CompanyNames() []string {
	names := make([]string, 0, len(d.Companies))
	for name := range d.Companies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a cached dataset from path. Any failure, a missing file
// included, yields an empty dataset.
func Load(path string) Dataset {
	var ds Dataset
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}
	}
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}
	}
	return ds
}

// Save writes the dataset to path, creating parent directories.
func Save(path string, ds Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
