// Package porecord persists the pickup purchase-order records and their
// upload status. Records carry a stable generated id so edits and
// deletes address a record rather than a list position; files written by
// older clients (no ids, "yes"/"no" upload flags) are normalized on
// load and never written back in the legacy form.
package porecord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadFlag is a bool that additionally accepts the legacy "yes"/"no"
// string encoding when decoding. It always encodes as a plain bool.
type UploadFlag bool

// UnmarshalJSON accepts true/false as well as the strings "yes" and
// "no" (and for safety "true"/"false") left behind by older clients.
func (f *UploadFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = UploadFlag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true":
			*f = true
		default:
			*f = false
		}
		return nil
	}
	return fmt.Errorf("unexpected uploaded value %s", data)
}

// Entry is a single purchase-order record awaiting or having completed
// upload.
type Entry struct {
	ID          string     `json:"id"`
	Uploaded    UploadFlag `json:"uploaded"`
	Description string     `json:"description"`
	Company     string     `json:"company"`
	Route       string     `json:"route"`
	Quantity    string     `json:"quantity"`
	PickupDate  string     `json:"pickup_date"`
	DriverID    string     `json:"driver_id"`
	CreatedAt   string     `json:"created_at"`
}

// PickupDateLayout is the display form used on records and receipts.
const PickupDateLayout = "01/02/2006"

// New builds a fresh entry with a generated id, today's pickup date, and
// a creation timestamp.
func New(description, company, route, quantity, driverID string) Entry {
	now := time.Now()
	return Entry{
		ID:          uuid.NewString(),
		Description: description,
		Company:     company,
		Route:       route,
		Quantity:    quantity,
		PickupDate:  now.Format(PickupDateLayout),
		DriverID:    driverID,
		CreatedAt:   now.Format(time.RFC3339),
	}
}

// Load reads the record list from path. Any failure - missing file,
// unreadable file, malformed JSON - degrades to an empty list. Entries
// without an id (written by older clients) are assigned one.
func Load(path string) []Entry {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(bytes, &entries); err != nil {
		return []Entry{}
	}
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
	}
	return entries
}

// Save writes the full record list to path as pretty-printed JSON.
func Save(path string, entries []Entry) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("po record path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	bytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}

// IndexByID returns the position of the entry with the given id, or -1.
func IndexByID(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Update replaces the entry whose id matches updated.ID.
func Update(entries []Entry, updated Entry) error {
	i := IndexByID(entries, updated.ID)
	if i < 0 {
		return fmt.Errorf("po record %s not found", updated.ID)
	}
	entries[i] = updated
	return nil
}

// Remove deletes the entries with the given ids and returns the new
// list. Positions are resolved first and removed highest-first so
// earlier removals cannot shift later ones.
func Remove(entries []Entry, ids []string) []Entry {
	indices := make([]int, 0, len(ids))
	for _, id := range ids {
		if i := IndexByID(entries, id); i >= 0 {
			indices = append(indices, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	for _, i := range indices {
		entries = append(entries[:i], entries[i+1:]...)
	}
	return entries
}

// MarkUploaded flips the upload flag for the given ids.
func MarkUploaded(entries []Entry, ids []string) {
	for _, id := range ids {
		if i := IndexByID(entries, id); i >= 0 {
			entries[i].Uploaded = true
		}
	}
}

// Normalize backfills the fields the upload endpoint requires on older
// records: pickup date and driver id.
func (e Entry) Normalize(driverID string) Entry {
	if strings.TrimSpace(e.PickupDate) == "" {
		e.PickupDate = time.Now().Format(PickupDateLayout)
	}
	if strings.TrimSpace(e.DriverID) == "" {
		e.DriverID = driverID
	}
	return e
}
