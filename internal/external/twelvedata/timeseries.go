package twelvedata

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wonny/stockscreen/internal/contracts"
)

const dateLayout = "2006-01-02"

// TimeSeries returns up to days daily bars ending today, oldest first
func (c *Client) TimeSeries(ctx context.Context, symbol string, days int) ([]contracts.Bar, bool) {
	end := c.now()
	start := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", "1day")
	params.Set("start_date", start.Format(dateLayout))
	params.Set("end_date", end.Format(dateLayout))
	params.Set("outputsize", strconv.Itoa(days))

	result, ok := c.Fetch(ctx, EndpointTimeSeries, params)
	if !ok {
		return nil, false
	}

	values := result.Get("values")
	if !values.IsArray() {
		c.logger.WithField("symbol", symbol).Warn("/time_series response has no values array")
		return nil, false
	}

	bars := make([]contracts.Bar, 0, len(values.Array()))
	values.ForEach(func(_, item gjson.Result) bool {
		dt, err := parseDatetime(item.Get("datetime").String())
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"symbol":   symbol,
				"datetime": item.Get("datetime").String(),
			}).Warn("Skipping bar with unparseable datetime")
			return true
		}

		bars = append(bars, contracts.Bar{
			Datetime: dt,
			Date:     dt.Format(dateLayout),
			Open:     item.Get("open").Float(),
			High:     item.Get("high").Float(),
			Low:      item.Get("low").Float(),
			Close:    item.Get("close").Float(),
			Volume:   parseVolume(item.Get("volume")),
		})
		return true
	})

	// API returns newest first
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Datetime.Before(bars[j].Datetime)
	})

	return bars, true
}

func parseDatetime(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
