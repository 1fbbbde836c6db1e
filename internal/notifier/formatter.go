package notifier

import (
	"fmt"
	"strings"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// Subject builds the alert subject line. Direction follows the sign of the
// predicted change, with a flat prediction counted as up.
func Subject(rec *model.PredictionRecord) string {
	direction := "📉 DOWN"
	if rec.PriceChange >= 0 {
		direction = "📈 UP"
	}
	return fmt.Sprintf("📊 %s (%s) – Daily Prediction %s", rec.Ticker, rec.CompanyName, direction)
}

// HTMLBody renders the alert body for one prediction record.
func HTMLBody(rec *model.PredictionRecord) string {
	var b strings.Builder

	b.WriteString(`<html>
<body style="font-family: Arial, sans-serif; max-width:560px; margin:0 auto;">
<h2 style="color:#1f77b4;">📊 Daily Market Monitor</h2>
`)
	b.WriteString(fmt.Sprintf("<p><strong>Ticker:</strong> %s &nbsp;|&nbsp; <strong>Company:</strong> %s &nbsp;|&nbsp; <strong>Sector:</strong> %s</p>\n",
		rec.Ticker, rec.CompanyName, rec.Sector))
	b.WriteString(fmt.Sprintf("<p><strong>Date:</strong> %s</p>\n<hr>\n", rec.Timestamp.Format(model.TimeLayout)))

	b.WriteString("<h3>💰 Price Analysis</h3>\n")
	b.WriteString(`<table style="width:100%; border-collapse:collapse;">` + "\n")
	b.WriteString(fmt.Sprintf(`<tr><td style="padding:6px;"><strong>Current Price</strong></td><td style="padding:6px;">$%.2f</td></tr>`+"\n", rec.CurrentPrice))
	b.WriteString(fmt.Sprintf(`<tr style="background:#f0f2f6;"><td style="padding:6px;"><strong>Predicted Price (Next Day)</strong></td><td style="padding:6px;">$%.2f</td></tr>`+"\n", rec.PredictedPrice))
	b.WriteString(fmt.Sprintf(`<tr><td style="padding:6px;"><strong>Expected Change</strong></td><td style="padding:6px;">$%.2f (%.2f%%)</td></tr>`+"\n", rec.PriceChange, rec.PriceChangePct))
	b.WriteString("</table>\n<hr>\n")

	b.WriteString("<h3>📉 Technical Indicators</h3>\n")
	b.WriteString(fmt.Sprintf("<p><strong>RSI:</strong> %s &nbsp;|&nbsp; <strong>MACD:</strong> %s</p>\n<hr>\n",
		indicatorString(rec.RSI), indicatorString(rec.MACD)))

	b.WriteString(`<p style="color:gray; font-size:11px;">This is an automated report generated by Market Monitor. Past performance does not guarantee future results. This is NOT financial advice.</p>
</body>
</html>
`)
	return b.String()
}

func indicatorString(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
