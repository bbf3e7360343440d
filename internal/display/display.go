package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dyike/PowerupGo/consts"
	"github.com/dyike/PowerupGo/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(18)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Italic(true)

	payloadStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(0, 1)
)

var fracScale = decimal.New(1, consts.FracDecimals)

// Renderer writes human readable market and purchase summaries.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// MarketState prints the current pricing parameters of both resources.
func (r *Renderer) MarketState(chain string, state *models.MarketState) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("⚡ Powerup market on %s", chain)))
	b.WriteString("\n\n")
	writeResource(&b, "NET", state.Net)
	b.WriteString("\n")
	writeResource(&b, "CPU", state.CPU)
	b.WriteString("\n")
	row(&b, "powerup days", fmt.Sprintf("%d", state.PowerupDays))
	row(&b, "min fee", state.MinPowerupFee.String())

	fmt.Fprintln(r.out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func writeResource(b *strings.Builder, name string, res models.ResourceState) {
	row(b, name+" price", fmt.Sprintf("%s .. %s", res.MinPrice, res.MaxPrice))
	row(b, name+" utilization", percentOfMarket(res.AdjustedUtilization))
}

// Quote prints what a purchase would buy and cost.
func (r *Renderer) Quote(quote *models.PurchaseQuote) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧾 Purchase quote"))
	b.WriteString("\n\n")
	row(&b, "max payment", quote.MaxPayment.String())
	row(&b, "days", fmt.Sprintf("%d", quote.Days))
	row(&b, "NET fraction", fmt.Sprintf("%d (%s)", quote.NetFrac, percentOfMarket(decimal.NewFromInt(quote.NetFrac))))
	row(&b, "CPU fraction", fmt.Sprintf("%d (%s)", quote.CPUFrac, percentOfMarket(decimal.NewFromInt(quote.CPUFrac))))
	row(&b, "NET unit price", quote.NetPrice.String())
	row(&b, "CPU unit price", quote.CPUPrice.String())
	row(&b, "estimated cost", quote.ActualCostAmount().String())

	fmt.Fprintln(r.out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// Result prints the accepted transaction.
func (r *Renderer) Result(result *models.TransactionResult) {
	fmt.Fprintln(r.out, successStyle.Render("✅ Powerup submitted"))
	fmt.Fprintf(r.out, "   Transaction: %s\n", result.TransactionID)
	if result.ExplorerURL != "" {
		fmt.Fprintf(r.out, "   Explorer:    %s\n", result.ExplorerURL)
	}
}

// Failure prints the error with an operator hint, and the node's payload when
// the transaction was rejected.
func (r *Renderer) Failure(err error) {
	kind, hint := models.Classify(err)
	fmt.Fprintln(r.out, errorStyle.Render(fmt.Sprintf("❌ %s", err)))
	if hint != "" {
		fmt.Fprintln(r.out, hintStyle.Render(fmt.Sprintf("   [%s] %s", kind, hint)))
	}

	var rej *models.RejectionError
	if errors.As(err, &rej) && len(rej.Payload) > 0 {
		fmt.Fprintln(r.out, payloadStyle.Render(prettyJSON(rej.Payload)))
	}
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

// percentOfMarket renders a 1e16-scaled fraction as a percentage.
func percentOfMarket(v decimal.Decimal) string {
	return v.Div(fracScale).Mul(decimal.NewFromInt(100)).StringFixed(6) + "%"
}

func prettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
