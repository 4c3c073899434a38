package validation

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tabcheck/internal/catalog"
)

func TestNewContext_Defaults(t *testing.T) {
	ctx, err := NewContext(catalog.MustDefault())
	require.NoError(t, err)
	assert.Equal(t, catalog.LangCN, ctx.Lang)
	assert.Empty(t, ctx.Prefix)
	assert.False(t, ctx.Quiet)
	assert.NotNil(t, ctx.Log())
}

func TestNewContext_NilCatalog(t *testing.T) {
	_, err := NewContext(nil)
	require.Error(t, err)
}

func TestNewContext_IncompleteCatalog(t *testing.T) {
	cat, err := catalog.Load([]byte("CN:\n  common:\n    row: 行\nEN:\n  common:\n    row: row\n"))
	require.NoError(t, err)

	_, err = NewContext(cat, WithLanguage(catalog.LangEN))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing keys")
}

func TestContext_PrefixApplied(t *testing.T) {
	ctx := newTestContext(t).WithPrefix("group name: ")

	issue := NewStr(ctx, "a b").Format(FormatRule{})
	msgs := ctx.Render(issue)
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0], "group name: a b contains"))
}

func TestContext_RenderEmpty(t *testing.T) {
	ctx := newTestContext(t)
	assert.Nil(t, ctx.Render(nil))
	assert.Equal(t, "", ctx.Message(nil))
}

func TestContext_RenderLanguages(t *testing.T) {
	en := newTestContext(t)
	cn, err := NewContext(catalog.MustDefault(), WithLanguage(catalog.LangCN), WithQuiet(true))
	require.NoError(t, err)

	issue := NewList(en, []string{"a", "a"}).Duplicates()
	require.NotNil(t, issue)
	assert.Equal(t, `duplicate element(s): "a"`, en.Message(issue))
	assert.Equal(t, `存在重复元素： "a"，请检查`, cn.Message(issue))
}

func TestContext_TraceRespectsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, err := NewContext(catalog.MustDefault(), WithLogger(logger))
	require.NoError(t, err)
	NewStr(ctx, "abc").Length(DefaultStrLength)
	assert.Contains(t, buf.String(), "check=length")

	buf.Reset()
	NewStr(ctx.Bare(), "abc").Length(DefaultStrLength)
	assert.Empty(t, buf.String())
}

func TestContext_Fault(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx, err := NewContext(catalog.MustDefault(), WithLanguage(catalog.LangEN), WithLogger(logger))
	require.NoError(t, err)

	issue := ctx.Fault(compFile, "size", assert.AnError)
	assert.Equal(t, KindInternal, issue.Kind)
	assert.Equal(t, "failed to check the file size", ctx.Message(issue))
	assert.Contains(t, buf.String(), "check failed unexpectedly")
}

func TestIssues(t *testing.T) {
	var issues Issues
	assert.True(t, issues.OK())

	issues.Add(nil, &Issue{Kind: KindValue}, nil)
	issues.Extend(Issues{{Kind: KindContent}})
	assert.Len(t, issues, 2)
	assert.False(t, issues.OK())
	assert.True(t, issues.HasKind(KindContent))
	assert.False(t, issues.HasKind(KindInternal))
}

func TestRender_UnknownKeyFallsBack(t *testing.T) {
	ctx := newTestContext(t)
	assert.Equal(t, "str.nope", ctx.Message(&Issue{Component: "str", Key: "nope"}))
}
