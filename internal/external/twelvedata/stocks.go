package twelvedata

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wonny/stockscreen/internal/contracts"
)

// ActiveStocks returns the configured symbol list as listed by /stocks.
// Duplicate listings of one symbol keep the first entry. Empty on failure.
func (c *Client) ActiveStocks(ctx context.Context) []contracts.Listing {
	params := url.Values{}
	params.Set("symbol", strings.Join(c.opts.Symbols, ","))
	if c.opts.Exchange != "" {
		params.Set("exchange", c.opts.Exchange)
	}
	if c.opts.Country != "" {
		params.Set("country", c.opts.Country)
	}

	result, ok := c.Fetch(ctx, EndpointStocks, params)
	if !ok {
		return []contracts.Listing{}
	}

	data := result.Get("data")
	if !data.IsArray() {
		c.logger.Warn("/stocks response has no data array")
		return []contracts.Listing{}
	}

	seen := make(map[string]bool)
	listings := make([]contracts.Listing, 0, len(c.opts.Symbols))
	data.ForEach(func(_, item gjson.Result) bool {
		symbol := item.Get("symbol").String()
		if symbol == "" || seen[symbol] {
			return true
		}
		seen[symbol] = true

		listings = append(listings, contracts.Listing{
			Symbol:   symbol,
			Name:     item.Get("name").String(),
			Currency: item.Get("currency").String(),
			Exchange: item.Get("exchange").String(),
			Country:  item.Get("country").String(),
			Type:     item.Get("type").String(),
		})
		return true
	})

	c.logger.WithField("count", len(listings)).Debug("Fetched active stocks")
	return listings
}

// Quote returns the latest quote for a symbol
func (c *Client) Quote(ctx context.Context, symbol string) (*contracts.Quote, bool) {
	result, ok := c.Fetch(ctx, EndpointQuote, url.Values{"symbol": {symbol}})
	if !ok {
		return nil, false
	}

	return &contracts.Quote{
		Symbol:        symbol,
		Name:          result.Get("name").String(),
		Exchange:      result.Get("exchange").String(),
		Close:         result.Get("close").Float(),
		PercentChange: result.Get("percent_change").Float(),
		Volume:        parseVolume(result.Get("volume")),
	}, true
}

// Fundamentals returns sector, ROE and P/S for a symbol.
// A response without a data object counts as no data.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, bool) {
	result, ok := c.Fetch(ctx, EndpointFundamentals, url.Values{"symbol": {symbol}})
	if !ok {
		return nil, false
	}

	data := result.Get("data")
	if !data.IsObject() {
		c.logger.WithField("symbol", symbol).Warn("/fundamentals response has no data object")
		return nil, false
	}

	return &contracts.Fundamentals{
		Symbol:          symbol,
		Sector:          data.Get("sector").String(),
		ReturnOnEquity:  data.Get("return_on_equity").Float(),
		PriceToSalesTTM: data.Get("price_to_sales_ttm").Float(),
	}, true
}

// parseVolume accepts integer, float and string encodings ("5000", "5000.0")
func parseVolume(v gjson.Result) int64 {
	if v.Type == gjson.String {
		if n, err := strconv.ParseInt(v.Str, 10, 64); err == nil {
			return n
		}
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0
		}
		return int64(f)
	}
	return int64(v.Float())
}
