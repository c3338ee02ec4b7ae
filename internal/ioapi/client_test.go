package ioapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/statapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapEnvelope(t *testing.T) {
	csv := "Stichtag;Schlüssel;Region\n2024-12-31;05112;Duisburg\n"

	tests := []struct {
		msg     string
		in      string
		want    string
		wantErr bool
	}{
		{
			"bare csv body",
			csv,
			csv,
			false,
		},
		{
			"wrapped payload",
			`{"Status":{"Code":0,"Content":"erfolgreich"},` +
				`"Object":{"Content":"a;b\nc;d"}}`,
			"a;b\nc;d",
			false,
		},
		{
			"warning code keeps payload",
			`{"Status":{"Code":22,"Content":"Hinweis"},` +
				`"Object":{"Content":"a;b"}}`,
			"a;b",
			false,
		},
		{
			"error code",
			`{"Status":{"Code":104,"Content":"keine Tabelle"},` +
				`"Object":{"Content":""}}`,
			"",
			true,
		},
		{
			"envelope without content",
			`{"Status":{"Code":0,"Content":"ok"},"Object":{"Content":""}}`,
			"",
			true,
		},
		{
			"broken json",
			`{"Status":`,
			"",
			true,
		},
		{
			"leading whitespace before envelope",
			"\n  " + `{"Status":{"Code":0},"Object":{"Content":"x;y"}}`,
			"x;y",
			false,
		},
	}

	for _, v := range tests {
		got, err := unwrapEnvelope("regional", "12411-03-03-4", v.in)
		if v.wantErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.want, got, v.msg)
	}
}

func TestDecodeCharset(t *testing.T) {
	utf := "Region;Düsseldorf"
	assert.Equal(t, utf, decodeCharset([]byte(utf)))

	// "Düsseldorf" in ISO 8859-1: 0xFC for ü is invalid UTF-8
	latin := []byte("Region;D\xfcsseldorf")
	assert.Equal(t, "Region;Düsseldorf", decodeCharset(latin))
}

func TestLandesSingleYearOnly(t *testing.T) {
	cfg := &config.APIConfig{LandesURL: "https://example.org/rest/2020"}
	c := NewLandes(cfg)

	_, err := c.FetchTable(context.Background(), statapi.TableRequest{
		TableID:   "22411-01i",
		StartYear: 2017,
		EndYear:   2023,
	})
	assert.Error(t, err)
}

func TestFetchTable(t *testing.T) {
	csv := "Stichtag;Schlüssel;Region;Insgesamt\n" +
		"2024-12-31;05112;Duisburg;498590\n"

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{}
			for k := range r.URL.Query() {
				gotQuery[k] = r.URL.Query().Get(k)
			}
			// \n inside the backquoted string reaches JSON as the
			// two-character escape, decoding to a newline
			w.Write([]byte(
				`{"Status":{"Code":0,"Content":"ok"},` +
					`"Object":{"Content":` +
					`"Stichtag;Schlüssel;Region;Insgesamt\n` +
					`2024-12-31;05112;Duisburg;498590\n"}}`))
		}))
	defer srv.Close()

	cfg := &config.APIConfig{
		RegionalURL:      srv.URL,
		RegionalUser:     "RE123456",
		RegionalPassword: "secret",
		TimeoutSec:       5,
	}
	c := NewRegional(cfg)

	body, err := c.FetchTable(context.Background(), statapi.TableRequest{
		TableID:   "12411-03-03-4",
		StartYear: 2024,
		EndYear:   2024,
	})
	require.NoError(t, err)
	assert.Equal(t, csv, body)

	assert.Equal(t, "RE123456", gotQuery["username"])
	assert.Equal(t, "secret", gotQuery["password"])
	assert.Equal(t, "12411-03-03-4", gotQuery["name"])
	assert.Equal(t, "datencsv", gotQuery["format"])
	assert.Equal(t, "all", gotQuery["area"])
	assert.Equal(t, "de", gotQuery["language"])
	assert.Equal(t, "2024", gotQuery["startyear"])
	assert.Equal(t, "2024", gotQuery["endyear"])
}

func TestFetchTableHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
	defer srv.Close()

	cfg := &config.APIConfig{RegionalURL: srv.URL, TimeoutSec: 5}
	c := NewRegional(cfg)

	_, err := c.FetchTable(context.Background(), statapi.TableRequest{
		TableID:   "12411-03-03-4",
		StartYear: 2024,
		EndYear:   2024,
	})
	assert.Error(t, err)
}

func TestSource(t *testing.T) {
	cfg := &config.APIConfig{}
	assert.Equal(t, SourceRegional, NewRegional(cfg).Source())
	assert.Equal(t, SourceLandes, NewLandes(cfg).Source())
}
