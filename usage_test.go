package paramparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func usageRegistry() *Registry {
	return NewRegistry().AddMany(
		NewParameter("--", "verbose", Fixed(0), nil).
			SetDescription("Verbose output"),
		NewParameter("--", "name", Fixed(1).Named("name"), nil).
			AliasWithPrefix("-", "n").
			SetRequired(true).
			SetDescription("Name to greet"),
		NewParameter("-", "t", Variadic().Named("tag"), nil).
			SetDescription("Tags"),
	)
}

func Test_WriteShortUsage(t *testing.T) {
	sb := strings.Builder{}
	require.NoError(t, WriteShortUsage(&sb, usageRegistry(), "app", false))
	require.Equal(t, "app [--verbose] --name ( -n ) <name> [-t <tag, ...>]\n", sb.String())

	sb = strings.Builder{}
	require.NoError(t, WriteShortUsage(&sb, usageRegistry(), "app", true))
	require.Equal(t, "app --name ( -n ) <name> [--verbose] [-t <tag, ...>]\n", sb.String())

	sb = strings.Builder{}
	require.NoError(t, WriteShortUsage(&sb, NewRegistry(), "app", true))
	require.Equal(t, "app\n", sb.String())
}

func Test_WriteUsage(t *testing.T) {
	sb := strings.Builder{}
	err := WriteUsage(&sb, usageRegistry(), UsageConfig{
		AppName:     "app",
		Version:     "1.0",
		Description: "Demo.",
		Binary:      "app",
	})
	require.NoError(t, err)

	out := sb.String()
	require.True(t, strings.HasPrefix(out, "\napp 1.0\n\nDescription:\n\n\tDemo.\n\n"), out)
	require.Contains(t, out, "Usage:\n\n\tapp [--verbose] --name ( -n ) <name> [-t <tag, ...>]\n\n")
	require.Contains(t, out, "Parameters:\n\n")
	require.NotContains(t, out, "\x1b[")

	lines := strings.Split(out, "\n")
	find := func(prefix string) string {
		for _, l := range lines {
			if strings.HasPrefix(l, "\t"+prefix) {
				return l
			}
		}
		t.Fatalf("no line starting with %q in\n%s", prefix, out)
		return ""
	}

	header := find("Parameter ")
	verbose := find("--verbose ")
	name := find("--name ")
	tags := find("-t ")

	// Columns line up under their headers
	require.Equal(t, strings.Index(header, "Properties"), strings.Index(name, "<name>"))
	require.Equal(t, strings.Index(header, "Properties"), strings.Index(tags, "<tag, ...>"))
	require.Equal(t, strings.Index(header, "Aliases"), strings.Index(name, "-n "))
	require.Equal(t, strings.Index(header, "Description"), strings.Index(verbose, "Verbose output"))
	require.Equal(t, strings.Index(header, "Description"), strings.Index(name, "Name to greet"))
	require.Equal(t, strings.Index(header, "Required"), strings.Index(name, "Yes"))

	require.NotContains(t, verbose, "Yes")
	require.Equal(t, verbose, strings.TrimRight(verbose, " "))
}

func Test_WriteUsageOptions(t *testing.T) {
	sb := strings.Builder{}
	err := WriteUsage(&sb, usageRegistry(), UsageConfig{
		AppName:       "app",
		Binary:        "app",
		RequiredFirst: true,
		ColumnPadding: 4,
		Exclude:       []Column{ColumnAliases, ColumnRequired},
	})
	require.NoError(t, err)

	out := sb.String()
	require.True(t, strings.HasPrefix(out, "\napp\n\nUsage:"), out)
	require.NotContains(t, out, "Description:\n")
	require.NotContains(t, out, "Aliases")
	require.NotContains(t, out, "Required")
	require.Contains(t, out, "\tParameter     Properties")

	// Required parameter listed first
	require.Less(t, strings.Index(out, "\t--name"), strings.Index(out, "\t--verbose"))
}

func Test_WriteUsageColor(t *testing.T) {
	sb := strings.Builder{}
	require.NoError(t, WriteUsage(&sb, usageRegistry(), UsageConfig{AppName: "app", Color: true}))
	require.Contains(t, sb.String(), "\x1b[")
}

func Test_ColumnString(t *testing.T) {
	names := []string{}
	for _, c := range allColumns {
		names = append(names, c.String())
	}
	require.Equal(t, []string{"Parameter", "Properties", "Aliases", "Description", "Required"}, names)
	require.Equal(t, "Column(9)", Column(9).String())
}
