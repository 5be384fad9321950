package cmr

import "path"

// SearchResponse is the Atom-style JSON document returned by the CMR
// granules.json endpoint.
type SearchResponse struct {
	Feed Feed `json:"feed"`
}

// Feed wraps the granule entries of a search response.
type Feed struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Entry []Entry `json:"entry"`
}

// Entry is one granule record.
type Entry struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	ProducerGranuleID string `json:"producer_granule_id"`
	DatasetID         string `json:"dataset_id"`
	TimeStart         string `json:"time_start"`
	TimeEnd           string `json:"time_end"`
	GranuleSize       string `json:"granule_size"`
	OnlineAccessFlag  bool   `json:"online_access_flag"`
	Links             []Link `json:"links"`
}

// Link is one related URL of a granule entry.
type Link struct {
	Rel       string `json:"rel"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Hreflang  string `json:"hreflang,omitempty"`
	Href      string `json:"href"`
	Inherited bool   `json:"inherited,omitempty"`
}

// DataLinks returns the entry's link URLs whose MIME type matches mimeType,
// e.g. "application/x-hdf5" for the retrievable data files.
func (e Entry) DataLinks(mimeType string) []string {
	var urls []string
	for _, l := range e.Links {
		if l.Type == mimeType {
			urls = append(urls, l.Href)
		}
	}
	return urls
}

// FilterLinks collects the data-file URLs of every entry, filtered by MIME
// type. Entries without a matching link contribute nothing.
func FilterLinks(entries []Entry, mimeType string) []string {
	var urls []string
	for _, e := range entries {
		urls = append(urls, e.DataLinks(mimeType)...)
	}
	return urls
}

// Basenames reduces a list of granule URLs to their file names, the form
// written to a granule index listing.
func Basenames(urls []string) []string {
	names := make([]string, 0, len(urls))
	for _, u := range urls {
		names = append(names, path.Base(u))
	}
	return names
}
