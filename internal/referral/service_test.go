package referral

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI answers Get with canned JSON and records Put bodies.
type stubAPI struct {
	responses map[string]string
	getErr    error
	putErr    error
	lastPath  string
	lastQuery url.Values
	puts      []any
}

func (s *stubAPI) Get(ctx context.Context, path string, query url.Values, out any) error {
	s.lastPath = path
	s.lastQuery = query
	if s.getErr != nil {
		return s.getErr
	}
	body, ok := s.responses[path]
	if !ok {
		return errors.New("unexpected path " + path)
	}
	return json.Unmarshal([]byte(body), out)
}

func (s *stubAPI) Put(ctx context.Context, path string, body, out any) error {
	s.lastPath = path
	s.puts = append(s.puts, body)
	return s.putErr
}

func TestValidateSettings(t *testing.T) {
	cases := []struct {
		name      string
		form      SettingsForm
		wantField string
	}{
		{name: "non numeric commission", form: SettingsForm{CommissionPercentage: "ten"}, wantField: fieldCommission},
		{name: "commission above 100", form: SettingsForm{CommissionPercentage: "100.01"}, wantField: fieldCommission},
		{name: "negative commission", form: SettingsForm{CommissionPercentage: "-1"}, wantField: fieldCommission},
		{name: "negative withdrawal", form: SettingsForm{MinimumWithdrawal: "-0.5"}, wantField: fieldWithdrawal},
		{name: "non numeric withdrawal", form: SettingsForm{MinimumWithdrawal: "5k"}, wantField: fieldWithdrawal},
		{name: "both blank", form: SettingsForm{CommissionPercentage: " ", MinimumWithdrawal: ""}, wantField: "general"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			update, errs := ValidateSettings(tc.form)
			assert.Contains(t, errs, tc.wantField)
			assert.True(t, update.Empty())
		})
	}
}

func TestValidateSettingsBounds(t *testing.T) {
	update, errs := ValidateSettings(SettingsForm{CommissionPercentage: "100", MinimumWithdrawal: "0"})
	require.Empty(t, errs)
	require.NotNil(t, update.CommissionPercentage)
	require.NotNil(t, update.MinimumWithdrawal)
	assert.True(t, update.CommissionPercentage.Equal(decimal.NewFromInt(100)))
	assert.True(t, update.MinimumWithdrawal.IsZero())

	update, errs = ValidateSettings(SettingsForm{CommissionPercentage: "0"})
	require.Empty(t, errs)
	assert.Nil(t, update.MinimumWithdrawal)
}

func TestUpdateSettingsRejectsWithoutNetworkCall(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)

	errs, err := svc.UpdateSettings(context.Background(), SettingsForm{CommissionPercentage: "150", MinimumWithdrawal: "-2"})
	require.NoError(t, err)
	assert.Len(t, errs, 2)
	assert.Empty(t, api.puts)
}

func TestUpdateSettingsBlankFormIsFieldError(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)

	errs, err := svc.UpdateSettings(context.Background(), SettingsForm{CommissionPercentage: "  "})
	require.NoError(t, err)
	assert.Contains(t, errs, "general")
	assert.Empty(t, api.puts)
}

func TestUpdateSettingsSendsOnlyFilledFields(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)

	errs, err := svc.UpdateSettings(context.Background(), SettingsForm{MinimumWithdrawal: "5000"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, api.puts, 1)
	assert.Equal(t, settingsPath, api.lastPath)

	raw, err := json.Marshal(api.puts[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"minimum_withdrawal":"5000"}`, string(raw))
}

func TestUpdateSettingsWrapsBackendError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&stubAPI{putErr: boom})
	_, err := svc.UpdateSettings(context.Background(), SettingsForm{CommissionPercentage: "5"})
	assert.ErrorIs(t, err, boom)
}

func TestListDecodesEnvelope(t *testing.T) {
	api := &stubAPI{responses: map[string]string{
		listPath: `{"data":{"data":[{"id":7,"name":"Chidi","email":"chidi@example.com","user_code":"CH7","no_of_referral":3,"amount_earned":"1500.50","date_joined":"2024-05-02"}],"pagination":{"current_page":2,"per_page":10,"total":11}}}`,
	}}
	svc := NewService(api)

	list, err := svc.List(context.Background(), ListQuery{Search: "chi", SortLabel: "Name", Page: 2})
	require.NoError(t, err)
	require.Len(t, list.Referrers, 1)
	ref := list.Referrers[0]
	assert.Equal(t, "CH7", ref.UserCode)
	assert.True(t, ref.AmountEarned.Equal(decimal.RequireFromString("1500.5")))
	assert.Equal(t, 2024, ref.JoinedAt().Year())
	assert.Equal(t, PageInfo{CurrentPage: 2, PerPage: 10, Total: 11, LastPage: 2}, list.Page)
	assert.Equal(t, "name", api.lastQuery.Get("sort_by"))
	assert.Equal(t, "chi", api.lastQuery.Get("search"))
}

func TestSettingsAndDetail(t *testing.T) {
	api := &stubAPI{responses: map[string]string{
		settingsPath:  `{"data":{"commission_percentage":12.5,"minimum_withdrawal":"2000"}}`,
		userPath + "9": `{"data":{"id":9,"name":"Ngozi","referred_users":[{"id":1,"name":"Tunde","commission":"250"}]}}`,
	}}
	svc := NewService(api)

	settings, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12.5", settings.CommissionPercentage.String())
	assert.Equal(t, "2000", settings.MinimumWithdrawal.String())

	detail, err := svc.UserDetail(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Ngozi", detail.Name)
	require.Len(t, detail.ReferredUsers, 1)
	assert.Equal(t, "Tunde", detail.ReferredUsers[0].Name)
}
