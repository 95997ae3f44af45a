package receipt

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

const Width = 32

var monthNames = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

var hundred = decimal.NewFromInt(100)

// Totals is the money summary printed under the items.
type Totals struct {
	Subtotal    decimal.Decimal
	Promotion   decimal.Decimal
	Coupon      decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals derives the summary from the items. The promotion is taken
// out of the discount first and the coupon gets whatever is left.
func ComputeTotals(o *model.Order) Totals {
	var t Totals

	sum := decimal.Zero
	for _, it := range o.Items {
		unit := decimal.Zero
		switch {
		case it.Price != nil:
			unit = *it.Price
		case it.Product != nil:
			unit = it.Product.Price
		}
		sum = sum.Add(unit.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	t.Subtotal = sum.Round(2)

	if p := o.Promotion; p != nil && !p.Value.IsZero() {
		switch p.Type {
		case model.PromotionPercentage:
			t.Promotion = t.Subtotal.Mul(p.Value).Div(hundred).Round(2)
		case model.PromotionFixed:
			t.Promotion = decimal.Min(p.Value, t.Subtotal).Round(2)
		}
	}

	if o.DiscountAmount != nil {
		t.Coupon = decimal.Max(decimal.Zero, o.DiscountAmount.Sub(t.Promotion)).Round(2)
	}

	if o.OrderType == model.OrderTypeDelivery && o.DeliveryFee != nil {
		t.DeliveryFee = *o.DeliveryFee
	}

	t.Total = o.Total
	return t
}

// Formatter turns an order into the plain text body of a receipt.
type Formatter struct {
	Money        Money
	PlatformName string
	PlatformURL  string
	Location     *time.Location
	Now          func() time.Time
}

func New(cfg model.ReceiptConfig) *Formatter {
	return &Formatter{
		Money:        NewMoney(cfg.Locale, cfg.CurrencySymbol),
		PlatformName: cfg.PlatformName,
		PlatformURL:  cfg.PlatformURL,
		Location:     time.Local,
		Now:          time.Now,
	}
}

var defaultFormatter = New(model.ReceiptConfig{
	Locale:         "pt-BR",
	CurrencySymbol: "R$",
	PlatformName:   "Cardapix",
	PlatformURL:    "www.cardapix.com",
})

// Format renders o with the default pt-BR settings.
func Format(o *model.Order, restaurantName string) string {
	return defaultFormatter.Format(o, restaurantName)
}

func (f *Formatter) Format(o *model.Order, restaurantName string) string {
	var w writer
	separator := strings.Repeat("=", Width)
	divider := strings.Repeat("-", Width)
	typeLabel := orderTypeLabel(o.OrderType)

	w.line(separator)
	w.line(typeLabel)
	w.line(separator)
	w.line("Emissao: " + f.issuedAt(o.CreatedAt))
	w.line("Data atual: " + f.now().Format("02/01/2006"))
	w.blank()

	w.line(divider)
	w.line("Pedido: #" + model.ShortID(o.ID, 8))
	w.line("Cliente: " + o.CustomerName)
	w.line("Tel: " + formatPhone(o.CustomerPhone))
	w.line("Tipo: " + typeLabel)
	w.blank()

	if o.OrderType == model.OrderTypeDelivery {
		if addr := addressLines(o.Address); len(addr) > 0 {
			for _, l := range addr {
				w.line(l)
			}
			w.blank()
		}
	}

	w.line(divider)
	w.line("Qt. Descricao")
	w.line(divider)
	for _, item := range GroupItems(o.Items) {
		f.writeItem(&w, item)
	}

	w.line(divider)
	w.row("Qtd. itens:", fmt.Sprint(ItemCount(o.Items)))
	w.blank()

	t := ComputeTotals(o)
	w.line(divider)
	w.row("Subtotal:", f.Money.Format(t.Subtotal))
	if t.Promotion.IsPositive() {
		label := "Promocao:"
		if o.Promotion.Name != "" {
			label = "Promocao: " + o.Promotion.Name + ":"
		}
		w.row(label, "-"+f.Money.Format(t.Promotion))
	}
	if t.Coupon.IsPositive() {
		label := "Cupom:"
		if o.Coupon != nil && o.Coupon.Code != "" {
			label = "Cupom: " + o.Coupon.Code + ":"
		}
		w.row(label, "-"+f.Money.Format(t.Coupon))
	}
	if t.DeliveryFee.IsPositive() {
		w.row("Taxa de entrega:", f.Money.Format(t.DeliveryFee))
	}
	w.line(separator)
	w.row("TOTAL:", f.Money.Format(t.Total))
	w.line(separator)
	w.blank()

	if o.PaymentMethod != "" {
		w.line("Pagamento: " + o.PaymentMethod)
	}
	if o.ChangeFor != nil && o.ChangeFor.IsPositive() {
		w.line("Troco para: " + f.Money.Format(*o.ChangeFor))
	}
	if o.Notes != "" {
		w.line("Observacoes: " + o.Notes)
	}
	w.blank()

	short := model.ShortID(o.ID, 9)
	w.line(fmt.Sprintf("%s nº %s", f.PlatformName, short))
	w.line(restaurantName)
	w.blank()

	user := model.ShortID(o.CustomerID, 6)
	if user == "" {
		user = "000000"
	}
	w.line("ID. do pedido: " + short)
	w.line(fmt.Sprintf("ID: %s | Usr: %s", short, user))
	w.line(f.PlatformURL)

	return w.String()
}

func (f *Formatter) writeItem(w *writer, item Line) {
	switch item.Kind {
	case lineCombo:
		w.line(fmt.Sprintf("Combo %d - %dx", item.ComboNumber, item.Quantity))
		if len(item.Parts) > 0 {
			w.line("Inclui:")
			for _, p := range item.Parts {
				w.line(fmt.Sprintf("  - %dx %s", p.Quantity, p.Name))
			}
		}
		if item.Notes != "" {
			w.line("(" + item.Notes + ")")
		}
		w.row("Total:", f.Money.Format(item.Total()))
	default:
		w.line(fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		if item.Notes != "" {
			w.line("(" + item.Notes + ")")
		}
		w.row("", fmt.Sprintf("%s x %d = %s", f.Money.Format(item.UnitPrice), item.Quantity, f.Money.Format(item.Total())))
	}
	w.blank()
}

func (f *Formatter) now() time.Time {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return now().In(f.location())
}

func (f *Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func (f *Formatter) issuedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(f.location())
	return fmt.Sprintf("%02d/%s - %02d:%02d", t.Day(), monthNames[t.Month()-1], t.Hour(), t.Minute())
}

func orderTypeLabel(t model.OrderType) string {
	switch t {
	case model.OrderTypePickup:
		return "RETIRADA"
	case model.OrderTypeDineIn:
		return "COMER NO LOCAL"
	default:
		return "ENTREGA"
	}
}

func formatPhone(phone string) string {
	if phone == "" {
		return "-"
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
	default:
		return phone
	}
}

func addressLines(a *model.Address) []string {
	if a == nil {
		return nil
	}
	var lines []string
	if a.Street != "" {
		street := a.Street
		if a.Number != "" {
			street += ", " + a.Number
		}
		if a.Complement != "" {
			street += ", " + a.Complement
		}
		lines = append(lines, street)
	}
	if a.Neighborhood != "" {
		lines = append(lines, "Bairro: "+a.Neighborhood)
	}
	if a.City != "" {
		city := a.City
		if a.State != "" {
			city += " - " + a.State
		}
		lines = append(lines, city)
	}
	if a.CEP != "" {
		lines = append(lines, "CEP: "+a.CEP)
	}
	return lines
}

type writer struct {
	lines []string
}

func (w *writer) line(s string) { w.lines = append(w.lines, s) }

func (w *writer) blank() { w.lines = append(w.lines, "") }

// row right-aligns value within the receipt width. Rows that do not fit
// fall back to a single space between label and value.
func (w *writer) row(label, value string) {
	pad := Width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if pad < 1 {
		if label == "" {
			w.line(value)
			return
		}
		pad = 1
	}
	w.line(label + strings.Repeat(" ", pad) + value)
}

func (w *writer) String() string {
	return strings.Join(w.lines, "\n")
}
