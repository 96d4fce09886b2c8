package types

import (
	"fmt"
	"strings"
)

// SystemKind distinguishes standalone rulebooks from their supplements.
type SystemKind string

const (
	KindCoreRulebook SystemKind = "Core Rulebook"
	KindSupplement   SystemKind = "Supplement"
)

// SystemKinds lists the kinds in picker order.
var SystemKinds = []SystemKind{KindCoreRulebook, KindSupplement}

// SupplementType tags what a supplement contains.
type SupplementType string

const (
	SupplementScenario  SupplementType = "Scenario/Campaign"
	SupplementRules     SupplementType = "Rules Expansion"
	SupplementModule    SupplementType = "Module"
	SupplementLorebook  SupplementType = "Lorebook/Sourcebook"
	SupplementBestiary  SupplementType = "Bestiary"
	supplementSeparator                = " | "
)

// SupplementTypes lists every supplement tag. A supplement carries at most
// all of them.
var SupplementTypes = []SupplementType{
	SupplementScenario,
	SupplementRules,
	SupplementModule,
	SupplementLorebook,
	SupplementBestiary,
}

// VTTPlatforms lists the virtual tabletops a system can be owned on.
var VTTPlatforms = []string{
	"AboveVTT",
	"Alchemy VTT",
	"D&D Beyond",
	"Demiplane",
	"Fantasy Grounds",
	"Foundry VTT",
	"Roll20",
	"Tabletop Simulator",
	"Telespire",
}

const vttSeparator = ", "

// Languages lists the language codes offered in the system form.
var Languages = []string{"PL", "ENG", "DE", "FR", "ES", "IT"}

// PlayStatus records whether a system has been played.
type PlayStatus string

const (
	Played    PlayStatus = "Played"
	NotPlayed PlayStatus = "Not played"
)

// PlayStatuses lists the play statuses in picker order.
var PlayStatuses = []PlayStatus{Played, NotPlayed}

// CollectionStatus is the ownership lifecycle of a copy of a system.
type CollectionStatus string

const (
	Owned     CollectionStatus = "Owned"
	ForSale   CollectionStatus = "ForSale"
	Sold      CollectionStatus = "Sold"
	NotOwned  CollectionStatus = "NotOwned"
	WantToBuy CollectionStatus = "WantToBuy"
)

// CollectionStatuses lists the collection statuses in picker order.
var CollectionStatuses = []CollectionStatus{Owned, ForSale, Sold, NotOwned, WantToBuy}

// Label returns the human-readable form of the status.
func (c CollectionStatus) Label() string {
	switch c {
	case ForSale:
		return "For sale"
	case NotOwned:
		return "Not owned"
	case WantToBuy:
		return "Want to buy"
	}
	return string(c)
}

// Currencies lists the currencies offered for prices.
var Currencies = []string{"PLN", "USD", "EUR", "GBP"}

// DefaultCurrency is used when a price has no currency.
const DefaultCurrency = "PLN"

// Ownership ranks how a system is held. Lower values sort first.
type Ownership int

const (
	OwnedBoth Ownership = iota + 1
	OwnedPhysical
	OwnedPDF
	OwnedNone
)

// Ownerships lists the tiers in filter order.
var Ownerships = []Ownership{OwnedPhysical, OwnedPDF, OwnedBoth, OwnedNone}

// Label returns the filter label for the tier.
func (o Ownership) Label() string {
	switch o {
	case OwnedBoth:
		return "Physical and PDF"
	case OwnedPhysical:
		return "Physical"
	case OwnedPDF:
		return "PDF"
	}
	return "None"
}

// GameSystem is a core rulebook or a supplement that extends one.
// A supplement with a nil or unknown ParentID is an orphan.
type GameSystem struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Kind             SystemKind       `json:"kind"`
	ParentID         *int64           `json:"parent_id,omitempty"`
	SupplementTypes  []SupplementType `json:"supplement_types,omitempty"`
	PublisherID      *int64           `json:"publisher_id,omitempty"`
	Physical         bool             `json:"physical"`
	PDF              bool             `json:"pdf"`
	VTT              []string         `json:"vtt,omitempty"`
	Language         string           `json:"language,omitempty"`
	PlayStatus       PlayStatus       `json:"play_status"`
	CollectionStatus CollectionStatus `json:"collection_status"`
	PurchasePrice    *float64         `json:"purchase_price,omitempty"`
	PurchaseCurrency string           `json:"purchase_currency,omitempty"`
	SalePrice        *float64         `json:"sale_price,omitempty"`
	SaleCurrency     string           `json:"sale_currency,omitempty"`
}

// IsCore reports whether the system is a Core Rulebook.
func (s *GameSystem) IsCore() bool { return s.Kind == KindCoreRulebook }

// IsSupplement reports whether the system is a Supplement.
func (s *GameSystem) IsSupplement() bool { return s.Kind == KindSupplement }

// UsesPurchasePrice reports whether the purchase pair is the active price.
func (s *GameSystem) UsesPurchasePrice() bool {
	return s.CollectionStatus == Owned || s.CollectionStatus == ForSale
}

// UsesSalePrice reports whether the sale pair is the active price.
func (s *GameSystem) UsesSalePrice() bool {
	return s.CollectionStatus == Sold
}

// ActivePrice returns the price pair selected by the collection status.
// The other pair is ignored even when it holds values.
func (s *GameSystem) ActivePrice() (*float64, string) {
	switch {
	case s.UsesPurchasePrice():
		return s.PurchasePrice, s.PurchaseCurrency
	case s.UsesSalePrice():
		return s.SalePrice, s.SaleCurrency
	}
	return nil, ""
}

// PriceDisplay formats the active price as "12.50 PLN", or "" when unset.
func (s *GameSystem) PriceDisplay() string {
	price, currency := s.ActivePrice()
	if price == nil {
		return ""
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%.2f %s", *price, currency)
}

// StatusDisplay combines play and collection status, e.g. "Played, Owned".
// A copy for sale is still owned, so it reads "Owned, For sale".
func (s *GameSystem) StatusDisplay() string {
	play := s.PlayStatus
	if play == "" {
		play = NotPlayed
	}
	collection := s.CollectionStatus
	if collection == "" {
		collection = Owned
	}
	label := collection.Label()
	if collection == ForSale {
		label = "Owned, " + label
	}
	return string(play) + ", " + label
}

// Ownership returns the ownership tier from the physical and PDF flags.
func (s *GameSystem) Ownership() Ownership {
	switch {
	case s.Physical && s.PDF:
		return OwnedBoth
	case s.Physical:
		return OwnedPhysical
	case s.PDF:
		return OwnedPDF
	}
	return OwnedNone
}

// Normalize drops values that do not apply to the system's kind and
// collection status: parent and supplement types of a core rulebook, and
// the inactive price pair.
func (s *GameSystem) Normalize() {
	if s.PlayStatus == "" {
		s.PlayStatus = NotPlayed
	}
	if s.CollectionStatus == "" {
		s.CollectionStatus = Owned
	}
	if !s.IsSupplement() {
		s.ParentID = nil
		s.SupplementTypes = nil
	}
	if !s.UsesPurchasePrice() {
		s.PurchasePrice = nil
		s.PurchaseCurrency = ""
	}
	if !s.UsesSalePrice() {
		s.SalePrice = nil
		s.SaleCurrency = ""
	}
}

// JoinSupplementTypes encodes supplement tags for storage.
func JoinSupplementTypes(tags []SupplementType) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, supplementSeparator)
}

// SplitSupplementTypes decodes stored supplement tags.
func SplitSupplementTypes(s string) []SupplementType {
	var tags []SupplementType
	for _, part := range strings.Split(s, strings.TrimSpace(supplementSeparator)) {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, SupplementType(part))
		}
	}
	return tags
}

// JoinVTT encodes VTT platforms for storage.
func JoinVTT(platforms []string) string {
	return strings.Join(platforms, vttSeparator)
}

// SplitVTT decodes stored VTT platforms.
func SplitVTT(s string) []string {
	var platforms []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			platforms = append(platforms, part)
		}
	}
	return platforms
}
