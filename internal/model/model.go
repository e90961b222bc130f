// Package model holds the documents served by the API and the request
// payloads that create and change them.
package model

import "time"

// Base is embedded by every document. All three fields are assigned by the
// store; values sent by clients are ignored.
type Base struct {
	ID        string     `json:"id"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (b *Base) DocumentID() string {
	return b.ID
}

// Stored is implemented by every entity that embeds Base.
type Stored interface {
	DocumentID() string
}

// Invitation statuses.
const (
	StatusPending   = "pending"
	StatusAttending = "attending"
	StatusDeclined  = "declined"
)

type Invitation struct {
	Base
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type GalleryItem struct {
	Base
	ImageURL  string `json:"imageUrl"`
	AssetKey  string `json:"assetKey,omitempty"`
	AssetType string `json:"assetType,omitempty"`
}

type Guest struct {
	Base
	GuestName   string `json:"guestName"`
	ReferralURL string `json:"referralUrl"`
}

type ScheduleEntry struct {
	Base
	Date    string `json:"date"`
	Time    string `json:"time"`
	EndTime string `json:"endTime,omitempty"`
	Venue   string `json:"venue"`
}

type MapLink struct {
	Base
	URL string `json:"url"`
}

type BankAccount struct {
	Base
	BankName  string `json:"bankName"`
	LogoURL   string `json:"logoUrl"`
	AssetKey  string `json:"assetKey,omitempty"`
	AssetType string `json:"assetType,omitempty"`
}

// TransferTarget is an account guests can send gifts to. Bank is filled in
// at read time from BankAccountRef and is null when the reference does not
// resolve.
type TransferTarget struct {
	Base
	AccountHolderName string       `json:"accountHolderName"`
	AccountNumber     string       `json:"accountNumber"`
	BankAccountRef    string       `json:"bankAccountRef"`
	Bank              *BankAccount `json:"bank"`
}

// MediaAsset backs the cover photo, couple cards, story photos, gift items
// and background audio.
type MediaAsset struct {
	Base
	AssetURL  string `json:"assetUrl"`
	AssetKey  string `json:"assetKey,omitempty"`
	AssetType string `json:"assetType,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Label     string `json:"label,omitempty"`
	LinkURL   string `json:"linkUrl,omitempty"`
}

// Slots. Each slot is stored in its own collection.
const (
	SlotCeremony  = "ceremony"
	SlotReception = "reception"

	SlotBride = "bride"
	SlotGroom = "groom"

	SlotFirst  = "first"
	SlotSecond = "second"
	SlotThird  = "third"

	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
)

var (
	ScheduleSlots = []string{SlotCeremony, SlotReception}
	MapSlots      = []string{SlotCeremony, SlotReception}
	CoupleSlots   = []string{SlotBride, SlotGroom}
	StorySlots    = []string{SlotFirst, SlotSecond, SlotThird}
	TransferSlots = []string{SlotPrimary, SlotSecondary}
)

// CreatedResponse is returned by create endpoints.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MessageResponse is returned by update and delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// AssetHolder is implemented by documents backed by a file on the asset
// host.
type AssetHolder interface {
	AssetRef() (key, resourceType string)
}

func (g *GalleryItem) AssetRef() (string, string) { return g.AssetKey, g.AssetType }
func (b *BankAccount) AssetRef() (string, string) { return b.AssetKey, b.AssetType }
func (m *MediaAsset) AssetRef() (string, string)  { return m.AssetKey, m.AssetType }
