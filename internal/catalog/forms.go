package catalog

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/rpgshelf/shelf/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("form"), ","); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	mustRegister(v, "language_code", func(fl validator.FieldLevel) bool {
		return ValidLanguage(fl.Field().String())
	})
	mustRegister(v, "system_kind", oneOf(types.SystemKinds))
	mustRegister(v, "play_status", oneOf(types.PlayStatuses))
	mustRegister(v, "collection_status", oneOf(types.CollectionStatuses))
	mustRegister(v, "supplement_type", oneOf(types.SupplementTypes))
	mustRegister(v, "vtt_platform", oneOf(types.VTTPlatforms))
	mustRegister(v, "currency", oneOf(types.Currencies))
	mustRegister(v, "gender", oneOf(types.Genders))
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// oneOf accepts a blank value or one of allowed.
func oneOf[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		for _, a := range allowed {
			if string(a) == s {
				return true
			}
		}
		return false
	}
}

// ValidLanguage reports whether code parses as a language tag. ISO 639-2
// codes such as ENG are accepted alongside two-letter codes. Blank is valid.
func ValidLanguage(code string) bool {
	if code == "" {
		return true
	}
	_, err := language.Parse(code)
	return err == nil
}

// validateForm runs the struct tags of form and maps the first failure to
// a field-scoped sentinel.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	var sentinel error
	switch fe.Tag() {
	case "required":
		sentinel = types.ErrNameRequired
	case "max":
		sentinel = types.ErrTooManySupplementTypes
	case "language_code":
		sentinel = types.ErrInvalidLanguage
	default:
		sentinel = types.ErrInvalidEnum
	}
	return types.Invalid(fe.Field(), sentinel)
}

// parseID reads an optional id field. Blank yields nil.
func parseID(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, types.Invalid(field, types.ErrInvalidID)
	}
	return &id, nil
}

// parsePrice reads an optional price, accepting a comma as the decimal
// separator. Blank yields nil.
func parsePrice(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, types.Invalid(field, types.ErrInvalidPrice)
	}
	return &f, nil
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatPrice(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

// PublisherForm holds the raw publisher dialog fields.
type PublisherForm struct {
	Name    string `form:"name" validate:"required"`
	Website string `form:"website"`
	Country string `form:"country"`
}

// Publisher validates the form and returns the entity it describes.
func (f PublisherForm) Publisher() (*types.Publisher, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := validateForm(f); err != nil {
		return nil, err
	}
	return &types.Publisher{
		Name:    f.Name,
		Website: strings.TrimSpace(f.Website),
		Country: strings.TrimSpace(f.Country),
	}, nil
}

// PublisherFormFrom prefills the edit dialog.
func PublisherFormFrom(p *types.Publisher) PublisherForm {
	return PublisherForm{Name: p.Name, Website: p.Website, Country: p.Country}
}

// PlayerForm holds the raw player dialog fields. Primary and Notable are
// mutually exclusive; use SetPrimary and SetNotable to keep them so.
type PlayerForm struct {
	Nickname string `form:"nickname" validate:"required"`
	FullName string `form:"full_name"`
	Gender   string `form:"gender" validate:"gender"`
	Social   string `form:"social"`
	Primary  bool   `form:"primary"`
	Notable  bool   `form:"notable"`
}

// SetPrimary sets the primary flag, clearing notable when set.
func (f *PlayerForm) SetPrimary(v bool) {
	f.Primary = v
	if v {
		f.Notable = false
	}
}

// SetNotable sets the notable flag, clearing primary when set.
func (f *PlayerForm) SetNotable(v bool) {
	f.Notable = v
	if v {
		f.Primary = false
	}
}

// Player validates the form and returns the entity it describes.
func (f PlayerForm) Player() (*types.Player, error) {
	f.Nickname = strings.TrimSpace(f.Nickname)
	if err := validateForm(f); err != nil {
		return nil, err
	}
	gender := types.Gender(f.Gender)
	if gender == "" {
		gender = types.Genders[0]
	}
	p := &types.Player{
		Nickname: f.Nickname,
		FullName: strings.TrimSpace(f.FullName),
		Gender:   gender,
		Social:   strings.TrimSpace(f.Social),
		Primary:  f.Primary,
		Notable:  f.Notable && !f.Primary,
	}
	return p, nil
}

// PlayerFormFrom prefills the edit dialog.
func PlayerFormFrom(p *types.Player) PlayerForm {
	return PlayerForm{
		Nickname: p.Nickname,
		FullName: p.FullName,
		Gender:   string(p.Gender),
		Social:   p.Social,
		Primary:  p.Primary,
		Notable:  p.Notable,
	}
}

// SystemForm holds the raw system dialog fields.
type SystemForm struct {
	Name             string   `form:"name" validate:"required"`
	Kind             string   `form:"kind" validate:"system_kind"`
	ParentID         string   `form:"parent"`
	SupplementTypes  []string `form:"supplement_types" validate:"max=5,dive,supplement_type"`
	PublisherID      string   `form:"publisher"`
	Physical         bool     `form:"physical"`
	PDF              bool     `form:"pdf"`
	VTT              []string `form:"vtt" validate:"dive,vtt_platform"`
	Language         string   `form:"language" validate:"language_code"`
	PlayStatus       string   `form:"play_status" validate:"play_status"`
	CollectionStatus string   `form:"collection_status" validate:"collection_status"`
	PurchasePrice    string   `form:"purchase_price"`
	PurchaseCurrency string   `form:"purchase_currency" validate:"currency"`
	SalePrice        string   `form:"sale_price"`
	SaleCurrency     string   `form:"sale_currency" validate:"currency"`
}

// SupplementFormFor prefills an add dialog for a supplement of parentID.
func SupplementFormFor(parentID int64) SystemForm {
	return SystemForm{
		Kind:     string(types.KindSupplement),
		ParentID: strconv.FormatInt(parentID, 10),
	}
}

// System validates the form and returns the entity it describes. Only the
// price pair selected by the collection status is parsed; the other pair
// is dropped.
func (f SystemForm) System() (*types.GameSystem, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Language = strings.TrimSpace(f.Language)
	if err := validateForm(f); err != nil {
		return nil, err
	}

	s := &types.GameSystem{
		Name:             f.Name,
		Kind:             types.SystemKind(f.Kind),
		Physical:         f.Physical,
		PDF:              f.PDF,
		VTT:              f.VTT,
		Language:         f.Language,
		PlayStatus:       types.PlayStatus(f.PlayStatus),
		CollectionStatus: types.CollectionStatus(f.CollectionStatus),
	}
	if s.Kind == "" {
		s.Kind = types.KindCoreRulebook
	}
	if s.IsSupplement() {
		if len(f.SupplementTypes) == 0 {
			return nil, types.Invalid("supplement_types", types.ErrSupplementTypeRequired)
		}
		for _, t := range f.SupplementTypes {
			s.SupplementTypes = append(s.SupplementTypes, types.SupplementType(t))
		}
		parent, err := parseID("parent", f.ParentID)
		if err != nil {
			return nil, err
		}
		s.ParentID = parent
	}

	publisher, err := parseID("publisher", f.PublisherID)
	if err != nil {
		return nil, err
	}
	s.PublisherID = publisher

	s.Normalize()
	switch {
	case s.UsesPurchasePrice():
		if s.PurchasePrice, err = parsePrice("purchase_price", f.PurchasePrice); err != nil {
			return nil, err
		}
		if s.PurchasePrice != nil {
			s.PurchaseCurrency = currencyOrDefault(f.PurchaseCurrency)
		}
	case s.UsesSalePrice():
		if s.SalePrice, err = parsePrice("sale_price", f.SalePrice); err != nil {
			return nil, err
		}
		if s.SalePrice != nil {
			s.SaleCurrency = currencyOrDefault(f.SaleCurrency)
		}
	}
	return s, nil
}

func currencyOrDefault(c string) string {
	if c == "" {
		return types.DefaultCurrency
	}
	return c
}

// SystemFormFrom prefills the edit dialog.
func SystemFormFrom(s *types.GameSystem) SystemForm {
	f := SystemForm{
		Name:             s.Name,
		Kind:             string(s.Kind),
		ParentID:         formatID(s.ParentID),
		PublisherID:      formatID(s.PublisherID),
		Physical:         s.Physical,
		PDF:              s.PDF,
		VTT:              append([]string(nil), s.VTT...),
		Language:         s.Language,
		PlayStatus:       string(s.PlayStatus),
		CollectionStatus: string(s.CollectionStatus),
		PurchasePrice:    formatPrice(s.PurchasePrice),
		PurchaseCurrency: s.PurchaseCurrency,
		SalePrice:        formatPrice(s.SalePrice),
		SaleCurrency:     s.SaleCurrency,
	}
	for _, t := range s.SupplementTypes {
		f.SupplementTypes = append(f.SupplementTypes, string(t))
	}
	return f
}
