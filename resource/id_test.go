package resource

import "testing"

func TestIDEqualityIgnoresCasing(t *testing.T) {
	t.Parallel()

	first := NewID("SUB-1", "My-Group", []string{"Microsoft.Web", "sites"}, "MyApp")
	second := NewID("sub-1", "my-group", []string{"microsoft.web", "SITES"}, "myapp")

	if !first.Equal(second) {
		t.Fatalf("expected ids to be equal regardless of casing:\n  %s\n  %s", first, second)
	}
	if first.Normalized() != second.Normalized() {
		t.Fatalf("expected identical normalized forms")
	}
}

func TestIDString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		id   ID
		want string
	}{
		{
			name: "subscription only",
			id:   NewID("sub-1", "", nil, ""),
			want: "/subscriptions/sub-1",
		},
		{
			name: "resource group scope",
			id:   NewID("sub-1", "rg-1", nil, ""),
			want: "/subscriptions/sub-1/resourceGroups/rg-1",
		},
		{
			name: "full resource path",
			id:   NewID("sub-1", "rg-1", []string{"Microsoft.Web", "sites"}, "my-app"),
			want: "/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.Web/sites/my-app",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := testCase.id.String(); got != testCase.want {
				t.Fatalf("String() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestIDChild(t *testing.T) {
	t.Parallel()

	app := NewID("sub-1", "rg-1", []string{"Microsoft.Web", "sites"}, "my-app")
	slot := app.Child("slots", "staging")

	want := "/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.Web/sites/my-app/slots/staging"
	if got := slot.String(); got != want {
		t.Fatalf("Child() = %q, want %q", got, want)
	}

	root := NewID("sub-1", "", nil, "")
	site := root.Child("Microsoft.Web/sites", "my-app")
	if got := site.String(); got != "/subscriptions/sub-1/providers/Microsoft.Web/sites/my-app" {
		t.Fatalf("Child() from subscription scope = %q", got)
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	t.Parallel()

	raw := "/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.DBforPostgreSQL/flexibleServers/db-1"
	id, err := ParseID(raw)
	if err != nil {
		t.Fatalf("ParseID returned error: %v", err)
	}
	if id.String() != raw {
		t.Fatalf("round trip mismatch: %q", id.String())
	}
	if id.ResourceGroup != "rg-1" || id.Name != "db-1" {
		t.Fatalf("unexpected parse result: %+v", id)
	}
}

func TestParseIDRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "missing subscription keyword", raw: "/resourceGroups/rg-1"},
		{name: "truncated provider path", raw: "/subscriptions/sub-1/providers/Microsoft.Web"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseID(testCase.raw); err == nil {
				t.Fatalf("expected parse error for %q", testCase.raw)
			}
		})
	}
}
