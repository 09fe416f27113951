package registrar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"domain-agent.backend/internal/config"
	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.NamecheapConfig{
		APIUser:  "apiuser",
		APIKey:   "apikey",
		ClientIP: "127.0.0.1",
		Timeout:  5 * time.Second,
	})
	c.baseURL = srv.URL
	return c
}

func TestCheckAvailability(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "namecheap.domains.check", r.URL.Query().Get("Command"))
		require.Equal(t, "example.com", r.URL.Query().Get("DomainList"))
		w.Write([]byte(`<?xml version="1.0"?>
<ApiResponse Status="OK">
  <CommandResponse>
    <DomainCheckResult Domain="example.com" Available="true" IsPremiumName="false" PremiumRegistrationPrice="0" />
  </CommandResponse>
</ApiResponse>`))
	})

	result, err := c.CheckAvailability(context.Background(), "example.com")
	require.NoError(t, err)
	require.True(t, result.Available)
	require.Equal(t, "example.com", result.Domain)
	require.InDelta(t, entities.DefaultDomainCost, result.Price, 0.001)
}

func TestCheckAvailability_TakenWithPremiumPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <DomainCheckResult Domain="rare.io" Available="false" IsPremiumName="true" PremiumRegistrationPrice="249.99" />
</ApiResponse>`))
	})

	result, err := c.CheckAvailability(context.Background(), "rare.io")
	require.NoError(t, err)
	require.False(t, result.Available)
	require.InDelta(t, 249.99, result.Price, 0.001)
}

func TestCheckAvailability_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="ERROR">
  <Errors><Error Number="1011102">API Key is invalid</Error></Errors>
</ApiResponse>`))
	})

	_, err := c.CheckAvailability(context.Background(), "example.com")
	require.ErrorIs(t, err, domainerrors.ErrRegistrarFailure)
	require.Contains(t, err.Error(), "API Key is invalid")
}

func TestCheckAvailability_HTTPFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.CheckAvailability(context.Background(), "example.com")
	require.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
}

func TestRegister(t *testing.T) {
	contact := entities.ContactInfo{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: "+1.5551234567", Address: "1 Main St", City: "Springfield",
		State: "IL", PostalCode: "62701", Country: "US",
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "namecheap.domains.create", q.Get("Command"))
		require.Equal(t, "shop", q.Get("SLD"))
		require.Equal(t, "co.uk", q.Get("TLD"))
		require.Equal(t, "2", q.Get("Years"))
		// The same contact is sent for every required role.
		for _, role := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
			require.Equal(t, "Jane", q.Get(role+"FirstName"))
			require.Equal(t, "US", q.Get(role+"Country"))
		}
		w.Write([]byte(`<ApiResponse Status="OK">
  <DomainCreateResult Domain="shop.co.uk" Registered="true" ChargedAmount="8.99" DomainID="9007199" />
</ApiResponse>`))
	})

	result, err := c.Register(context.Background(), "shop.co.uk", 2, contact)
	require.NoError(t, err)
	require.Equal(t, "shop.co.uk", result.Domain)
	require.Equal(t, "9007199", result.RegistrationID)
}

func TestRegister_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <DomainCreateResult Domain="taken.com" Registered="false" />
</ApiResponse>`))
	})

	_, err := c.Register(context.Background(), "taken.com", 1, entities.ContactInfo{})
	require.ErrorIs(t, err, domainerrors.ErrRegistrarFailure)
}

func TestGetInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "namecheap.domains.getInfo", r.URL.Query().Get("Command"))
		w.Write([]byte(`<ApiResponse Status="OK">
  <DomainGetInfoResult Status="Ok" ID="9007199" DomainName="example.com">
    <DomainDetails><ExpiredDate Expires="08/21/2027" /></DomainDetails>
    <Modificationrights AutoRenew="true" />
  </DomainGetInfoResult>
</ApiResponse>`))
	})

	info, err := c.GetInfo(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, "Ok", info.Status)
	require.Equal(t, "08/21/2027", info.ExpirationDate)
	require.True(t, info.AutoRenew)
}

func TestSetDNSRecords(t *testing.T) {
	records := []entities.DNSRecord{
		{Type: "A", Name: "@", Value: "1.2.3.4", TTL: 3600},
		{Type: "CNAME", Name: "www", Value: "example.com."},
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "namecheap.domains.dns.setHosts", q.Get("Command"))
		require.Equal(t, "A", q.Get("RecordType1"))
		require.Equal(t, "1.2.3.4", q.Get("Address1"))
		require.Equal(t, "3600", q.Get("TTL1"))
		// Missing TTL falls back to the registrar default.
		require.Equal(t, "1800", q.Get("TTL2"))
		w.Write([]byte(`<ApiResponse Status="OK">
  <DomainDNSSetHostsResult Domain="example.com" IsSuccess="true" />
</ApiResponse>`))
	})

	require.NoError(t, c.SetDNSRecords(context.Background(), "example.com", records))
}

func TestSetDNSRecords_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ApiResponse Status="OK">
  <DomainDNSSetHostsResult Domain="example.com" IsSuccess="false" />
</ApiResponse>`))
	})

	err := c.SetDNSRecords(context.Background(), "example.com", nil)
	require.ErrorIs(t, err, domainerrors.ErrRegistrarFailure)
}
