package registrar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"domain-agent.backend/internal/config"
	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/pkg/logger"
	"domain-agent.backend/pkg/utils"
)

// Namecheap responses are flat XML with the interesting values in
// attributes, so they are scraped with anchored expressions instead of a
// full decoder. Attribute order within an element is stable in practice.
var (
	reAPIError     = regexp.MustCompile(`<Error[^>]*>([^<]+)</Error>`)
	reCheckResult  = regexp.MustCompile(`<DomainCheckResult[^>]*Domain="([^"]+)"[^>]*Available="([^"]+)"[^>]*/?>`)
	rePremiumPrice = regexp.MustCompile(`PremiumRegistrationPrice="([0-9.]+)"`)
	reCreateResult = regexp.MustCompile(`<DomainCreateResult[^>]*Registered="([^"]+)"`)
	reCreateID     = regexp.MustCompile(`<DomainCreateResult[^>]*DomainID="([^"]+)"`)
	reInfoStatus   = regexp.MustCompile(`<DomainGetInfoResult[^>]*Status="([^"]+)"`)
	reInfoExpires  = regexp.MustCompile(`Expires="([^"]+)"`)
	reAutoRenew    = regexp.MustCompile(`AutoRenew="true"`)
	reSetHostsOK   = regexp.MustCompile(`<DomainDNSSetHostsResult[^>]*IsSuccess="true"`)
)

// Client talks to the Namecheap XML API
type Client struct {
	cfg        config.NamecheapConfig
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a registrar client with a fixed request timeout
func NewClient(cfg config.NamecheapConfig) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: cfg.BaseURL(),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ services.Registrar = (*Client)(nil)

// CheckAvailability queries whether a domain can be registered
func (c *Client) CheckAvailability(ctx context.Context, domain string) (*entities.AvailabilityResult, error) {
	body, err := c.call(ctx, "namecheap.domains.check", url.Values{
		"DomainList": {domain},
	})
	if err != nil {
		return nil, err
	}

	match := reCheckResult.FindStringSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("%w: unexpected availability response for %s", domainerrors.ErrUpstreamFailure, domain)
	}

	result := &entities.AvailabilityResult{
		Domain:    match[1],
		Available: strings.EqualFold(match[2], "true"),
		Currency:  "USD",
	}
	if priceMatch := rePremiumPrice.FindStringSubmatch(body); priceMatch != nil {
		if price, err := strconv.ParseFloat(priceMatch[1], 64); err == nil && price > 0 {
			result.Price = price
		}
	}
	if result.Price == 0 {
		result.Price = entities.DefaultDomainCost
	}
	return result, nil
}

// Register submits a registration. The caller has already collected
// payment; a failure here parks the domain until support intervenes.
func (c *Client) Register(ctx context.Context, domain string, years int, contact entities.ContactInfo) (*services.RegistrationResult, error) {
	sld, tld := utils.SplitDomain(domain)
	if years < 1 {
		years = 1
	}

	params := url.Values{
		"DomainName": {domain},
		"Years":      {strconv.Itoa(years)},
		"SLD":        {sld},
		"TLD":        {tld},
	}
	for _, role := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
		params.Set(role+"FirstName", contact.FirstName)
		params.Set(role+"LastName", contact.LastName)
		params.Set(role+"Address1", contact.Address)
		params.Set(role+"City", contact.City)
		params.Set(role+"StateProvince", contact.State)
		params.Set(role+"PostalCode", contact.PostalCode)
		params.Set(role+"Country", contact.Country)
		params.Set(role+"Phone", contact.Phone)
		params.Set(role+"EmailAddress", contact.Email)
	}

	body, err := c.call(ctx, "namecheap.domains.create", params)
	if err != nil {
		return nil, err
	}

	match := reCreateResult.FindStringSubmatch(body)
	if match == nil || !strings.EqualFold(match[1], "true") {
		return nil, fmt.Errorf("%w: registration rejected for %s", domainerrors.ErrRegistrarFailure, domain)
	}

	result := &services.RegistrationResult{Domain: domain}
	if idMatch := reCreateID.FindStringSubmatch(body); idMatch != nil {
		result.RegistrationID = idMatch[1]
	}
	return result, nil
}

// GetInfo fetches the registrar's view of a registered domain
func (c *Client) GetInfo(ctx context.Context, domain string) (*services.DomainInfo, error) {
	body, err := c.call(ctx, "namecheap.domains.getInfo", url.Values{
		"DomainName": {domain},
	})
	if err != nil {
		return nil, err
	}

	info := &services.DomainInfo{
		Domain:    domain,
		AutoRenew: reAutoRenew.MatchString(body),
	}
	if match := reInfoStatus.FindStringSubmatch(body); match != nil {
		info.Status = match[1]
	}
	if match := reInfoExpires.FindStringSubmatch(body); match != nil {
		info.ExpirationDate = match[1]
	}
	return info, nil
}

// SetDNSRecords replaces all host records for a domain
func (c *Client) SetDNSRecords(ctx context.Context, domain string, records []entities.DNSRecord) error {
	sld, tld := utils.SplitDomain(domain)
	params := url.Values{
		"SLD": {sld},
		"TLD": {tld},
	}
	for i, record := range records {
		n := strconv.Itoa(i + 1)
		params.Set("HostName"+n, record.Name)
		params.Set("RecordType"+n, record.Type)
		params.Set("Address"+n, record.Value)
		ttl := record.TTL
		if ttl <= 0 {
			ttl = 1800
		}
		params.Set("TTL"+n, strconv.Itoa(ttl))
	}

	body, err := c.call(ctx, "namecheap.domains.dns.setHosts", params)
	if err != nil {
		return err
	}
	if !reSetHostsOK.MatchString(body) {
		return fmt.Errorf("%w: dns update rejected for %s", domainerrors.ErrRegistrarFailure, domain)
	}
	return nil
}

func (c *Client) call(ctx context.Context, command string, params url.Values) (string, error) {
	query := url.Values{
		"ApiUser":  {c.cfg.APIUser},
		"ApiKey":   {c.cfg.APIKey},
		"UserName": {c.cfg.APIUser},
		"ClientIp": {c.cfg.ClientIP},
		"Command":  {command},
	}
	for key, values := range params {
		query[key] = values
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamFailure, err)
	}
	body := string(raw)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: registrar returned status %d", domainerrors.ErrUpstreamFailure, resp.StatusCode)
	}
	if strings.Contains(body, `Status="ERROR"`) {
		msg := "unknown registrar error"
		if match := reAPIError.FindStringSubmatch(body); match != nil {
			msg = strings.TrimSpace(match[1])
		}
		logger.Warn(ctx, "registrar api error",
			zap.String("command", command), zap.String("message", msg))
		return "", fmt.Errorf("%w: %s", domainerrors.ErrRegistrarFailure, msg)
	}
	return body, nil
}
