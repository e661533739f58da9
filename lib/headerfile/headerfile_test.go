package headerfile

import (
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"User-Agent: Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		"",
		"# captured from devtools",
		"Cookie: session=abc123; theme=dark",
		"Accept-Encoding: gzip, deflate",
		"X-Padded:   two leading spaces kept",
	}, "\n")

	headers, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, headers, 4)

	require.Equal(t, "User-Agent", headers[0].Name)
	require.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", headers[0].Value)
	require.Equal(t, "session=abc123; theme=dark", headers.Get("cookie"))
	require.Equal(t, "gzip, deflate", headers.Get("Accept-Encoding"))

	// only the single conventional space is removed
	require.Equal(t, "  two leading spaces kept", headers.Get("X-Padded"))
}

func TestParseMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("User-Agent: ok\nnot a header\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestParseEmptyName(t *testing.T) {
	_, err := Parse(strings.NewReader(": value without a name"))
	require.Error(t, err)
}

func TestApplyKeepsDuplicates(t *testing.T) {
	headers := Headers{
		{Name: "Accept", Value: "text/html"},
		{Name: "X-Many", Value: "one"},
		{Name: "X-Many", Value: "two"},
	}

	req := resty.New().R()
	headers.Apply(req)

	require.Equal(t, "text/html", req.Header.Get("Accept"))
	require.Equal(t, []string{"one", "two"}, req.Header.Values("X-Many"))
}
