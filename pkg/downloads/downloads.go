// SPDX-License-Identifier: MPL-2.0

// Package downloads defines the read-side projections of the daily download
// counters kept per version and per crate.
//
// Records are built from storage rows by explicit, column-by-name extraction
// and are read-only once built. Only version downloads have an external form.
package downloads

import (
	"time"

	"github.com/cratehub/registry/pkg/types"
)

const (
	// TableVersionDownloads holds one row per version per day.
	TableVersionDownloads = "version_downloads"
	// TableCrateDownloads holds one row per crate per day.
	TableCrateDownloads = "crate_downloads"
)

var (
	// VersionDownloadColumns are the columns VersionDownloadFromRow reads.
	VersionDownloadColumns = []string{"id", "version_id", "downloads", "counted", "date"}
	// CrateDownloadColumns are the columns CrateDownloadFromRow reads.
	CrateDownloadColumns = []string{"id", "crate_id", "downloads", "date"}
)

type (
	// VersionDownload is the download count of one version on one day.
	// Counted is the part of Downloads already folded into the crate and
	// version totals; storage keeps Counted <= Downloads.
	VersionDownload struct {
		ID        int32
		VersionID int32
		Downloads int32
		Counted   int32
		Date      time.Time
	}

	// EncodableVersionDownload is the external form of a VersionDownload.
	EncodableVersionDownload struct {
		ID        int32  `json:"id"`
		Version   int32  `json:"version"`
		Downloads int32  `json:"downloads"`
		Date      string `json:"date"`
	}

	// CrateDownload is the download count of one crate on one day.
	CrateDownload struct {
		ID        int32
		CrateID   int32
		Downloads int32
		Date      time.Time
	}
)

// Encodable returns the external form: Counted is dropped, VersionID becomes
// Version, and Date is rendered with types.EncodeTime.
func (d VersionDownload) Encodable() EncodableVersionDownload {
	return EncodableVersionDownload{
		ID:        d.ID,
		Version:   d.VersionID,
		Downloads: d.Downloads,
		Date:      types.EncodeTime(d.Date),
	}
}
