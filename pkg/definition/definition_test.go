package definition

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookJSON = `{
  "name": "Book",
  "tableName": "books",
  "description": "Library books",
  "ownerField": "ownerId",
  "fields": [
    {"name": "title", "type": "string", "required": true},
    {"name": "pages", "type": "number", "default": 100},
    {"name": "available", "type": "boolean", "default": true},
    {"name": "isbn", "unique": true}
  ],
  "rbac": {
    "Admin": ["all"],
    "Viewer": ["read"],
    "Manager": ["create", "read", "update"]
  }
}`

func TestParse_JSON(t *testing.T) {
	m, err := Parse([]byte(bookJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Book", m.Name)
	assert.Equal(t, "books", m.RouteName())
	assert.Equal(t, []string{"title"}, m.RequiredFields())
	assert.True(t, m.HasOwner())
	assert.Equal(t, []string{"read"}, m.Permissions("Viewer"))
	assert.Nil(t, m.Permissions("Nobody"))
	assert.NoError(t, m.Validate())

	f, ok := m.Field("isbn")
	require.True(t, ok)
	ft, err := f.FieldType()
	require.NoError(t, err)
	assert.Equal(t, TypeString, ft)
}

func TestParse_YAML(t *testing.T) {
	doc := `
name: Author
fields:
  - name: name
    type: string
    required: true
  - name: age
    type: number
    default: 30
rbac:
  Viewer: [read]
`
	m, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "author", m.RouteName())
	assert.NoError(t, m.Validate())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{not json"), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("name: [unterminated"), FormatYAML)
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "Book.json")
	require.NoError(t, os.WriteFile(path, []byte(bookJSON), 0o644))
	m, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Book", m.Name)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = ParseFile(txt)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		model   Model
		wantErr string
	}{
		{
			name:    "missing name",
			model:   Model{Fields: []Field{{Name: "title"}}},
			wantErr: "name",
		},
		{
			name:    "bad table name",
			model:   Model{Name: "Book", TableName: "books; drop table users", Fields: []Field{{Name: "title"}}},
			wantErr: "tableName",
		},
		{
			name:    "reserved id field",
			model:   Model{Name: "Book", Fields: []Field{{Name: "id"}}},
			wantErr: "fields[0].name",
		},
		{
			name:    "duplicate field",
			model:   Model{Name: "Book", Fields: []Field{{Name: "title"}, {Name: "title"}}},
			wantErr: "fields[1].name",
		},
		{
			name:    "unknown type",
			model:   Model{Name: "Book", Fields: []Field{{Name: "title", Type: "blob"}}},
			wantErr: "fields[0].type",
		},
		{
			name:    "fractional number default",
			model:   Model{Name: "Book", Fields: []Field{{Name: "pages", Type: "number", Default: 1.5}}},
			wantErr: "fields[0].default",
		},
		{
			name:    "number default out of integer range",
			model:   Model{Name: "Product", Fields: []Field{{Name: "qty", Type: "number", Default: float64(3e9)}}},
			wantErr: "fields[0].default",
		},
		{
			name:    "string boolean default",
			model:   Model{Name: "Book", Fields: []Field{{Name: "ok", Type: "boolean", Default: "yes"}}},
			wantErr: "fields[0].default",
		},
		{
			name:    "relation without target",
			model:   Model{Name: "Book", Fields: []Field{{Name: "author", Type: "relation"}}},
			wantErr: "fields[0].relation",
		},
		{
			name:    "unknown action",
			model:   Model{Name: "Book", Fields: []Field{{Name: "title"}}, RBAC: map[string][]string{"Viewer": {"peek"}}},
			wantErr: "rbac.Viewer",
		},
		{
			name:    "bad owner field",
			model:   Model{Name: "Book", OwnerField: "owner-id", Fields: []Field{{Name: "title"}}},
			wantErr: "ownerField",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			found := false
			for _, v := range verrs {
				if v.Field == tt.wantErr {
					found = true
				}
			}
			assert.True(t, found, "expected error on %s, got %v", tt.wantErr, verrs)
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("books"))
	assert.True(t, ValidIdentifier("_private2"))
	assert.False(t, ValidIdentifier("2books"))
	assert.False(t, ValidIdentifier(`books"`))
	assert.False(t, ValidIdentifier(""))
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ValidIdentifier(string(long)))
}

func TestClone(t *testing.T) {
	m, err := Parse([]byte(bookJSON), FormatJSON)
	require.NoError(t, err)

	c := m.Clone()
	c.Fields[0].Name = "changed"
	c.RBAC["Viewer"][0] = "delete"

	assert.Equal(t, "title", m.Fields[0].Name)
	assert.Equal(t, "read", m.RBAC["Viewer"][0])
}

func TestNormalize(t *testing.T) {
	m := Model{Name: "Book", TableName: "Books"}
	m.Normalize()
	assert.Equal(t, "books", m.TableName)

	m = Model{Name: "Author"}
	m.Normalize()
	assert.Equal(t, "author", m.TableName)
}

func TestMarshalFile_RoundTrip(t *testing.T) {
	m, err := Parse([]byte(bookJSON), FormatJSON)
	require.NoError(t, err)
	m.Published = true

	data, err := m.MarshalFile()
	require.NoError(t, err)

	back, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestIntegerValue(t *testing.T) {
	n, ok := IntegerValue(float64(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = IntegerValue(4.2)
	assert.False(t, ok)

	n, ok = IntegerValue(7)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = IntegerValue("7")
	assert.False(t, ok)

	n, ok = IntegerValue(float64(math.MaxInt32))
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt32), n)

	n, ok = IntegerValue(float64(math.MinInt32))
	assert.True(t, ok)
	assert.Equal(t, int64(math.MinInt32), n)

	_, ok = IntegerValue(float64(3e9))
	assert.False(t, ok)
	_, ok = IntegerValue(int64(math.MinInt32) - 1)
	assert.False(t, ok)
	_, ok = IntegerValue(uint64(math.MaxInt32) + 1)
	assert.False(t, ok)
}

func TestActionParsing(t *testing.T) {
	a, err := ActionString("READ")
	require.NoError(t, err)
	assert.Equal(t, ActionRead, a)
	assert.True(t, ActionDelete.Mutating())
	assert.False(t, ActionRead.Mutating())

	_, err = ActionString("peek")
	assert.Error(t, err)
}
