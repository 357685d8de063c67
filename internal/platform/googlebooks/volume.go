package googlebooks

// VolumesResponse matches books/v1/volumes.
type VolumesResponse struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is one search result. Every block and scalar is optional in the API,
// so pointers keep "absent" distinct from a zero value.
type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo *VolumeInfo `json:"volumeInfo,omitempty"`
	SaleInfo   *SaleInfo   `json:"saleInfo,omitempty"`
}

type VolumeInfo struct {
	Title               *string              `json:"title,omitempty"`
	Subtitle            *string              `json:"subtitle,omitempty"`
	Authors             []string             `json:"authors,omitempty"`
	Description         *string              `json:"description,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	ReadingModes        *ReadingModes        `json:"readingModes,omitempty"`
	PageCount           *int                 `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	Language            *string              `json:"language,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
	RatingsCount        *int                 `json:"ratingsCount,omitempty"`
	AverageRating       *float64             `json:"averageRating,omitempty"`
	PublishedDate       *string              `json:"publishedDate,omitempty"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type ReadingModes struct {
	Text  *bool `json:"text,omitempty"`
	Image *bool `json:"image,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail *string `json:"smallThumbnail,omitempty"`
	Thumbnail      *string `json:"thumbnail,omitempty"`
}

type SaleInfo struct {
	Country     *string `json:"country,omitempty"`
	Saleability *string `json:"saleability,omitempty"`
	IsEbook     *bool   `json:"isEbook,omitempty"`
	ListPrice   *Price  `json:"listPrice,omitempty"`
	RetailPrice *Price  `json:"retailPrice,omitempty"`
	BuyLink     *string `json:"buyLink,omitempty"`
}

type Price struct {
	Amount       *float64 `json:"amount,omitempty"`
	CurrencyCode *string  `json:"currencyCode,omitempty"`
}

// Info returns the volume information block, or an empty one when absent.
func (v Volume) Info() VolumeInfo {
	if v.VolumeInfo == nil {
		return VolumeInfo{}
	}
	return *v.VolumeInfo
}

// Sale returns the sale information block, or an empty one when absent.
func (v Volume) Sale() SaleInfo {
	if v.SaleInfo == nil {
		return SaleInfo{}
	}
	return *v.SaleInfo
}

func (i VolumeInfo) Modes() ReadingModes {
	if i.ReadingModes == nil {
		return ReadingModes{}
	}
	return *i.ReadingModes
}

// Thumbnail returns imageLinks.thumbnail or nil.
func (i VolumeInfo) Thumbnail() *string {
	if i.ImageLinks == nil {
		return nil
	}
	return i.ImageLinks.Thumbnail
}

func (s SaleInfo) List() Price {
	if s.ListPrice == nil {
		return Price{}
	}
	return *s.ListPrice
}

func (s SaleInfo) Retail() Price {
	if s.RetailPrice == nil {
		return Price{}
	}
	return *s.RetailPrice
}
