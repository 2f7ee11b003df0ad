package transformer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/errors"
	"github.com/standardbeagle/lingo/internal/types"
)

// analyzeAndTransform runs both passes with the default adapter.
func analyzeAndTransform(t *testing.T, path, src string) ([]types.WrapCandidate, *types.TransformResult) {
	t.Helper()
	cands, err := analyzer.Analyze(path, []byte(src), nil)
	require.NoError(t, err)
	res, err := Transform(path, []byte(src), cands, nil)
	require.NoError(t, err)
	return cands, res
}

func TestTransform_MarkupWrapAddsImport(t *testing.T) {
	src := "export const Title = () => <h1>Welcome to our app</h1>;\n"
	cands, res := analyzeAndTransform(t, "Title.jsx", src)
	require.Len(t, cands, 1)

	assert.Equal(t, "import { Trans } from \"react-i18next\";\n\n"+
		"export const Title = () => <h1><Trans>Welcome to our app</Trans></h1>;\n", string(res.Output))
	assert.Equal(t, 1, res.WrappedCount)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 0, res.HooksInjected)
	assert.Equal(t, []string{"Trans"}, res.ImportsAdded)
}

func TestTransform_AttributeInjectsHookIntoExistingImport(t *testing.T) {
	src := `import { Trans } from "react-i18next";

export function SearchBox() {
  return <input placeholder="Search all files" />;
}
`
	want := `import { Trans, useTranslation } from "react-i18next";

export function SearchBox() {
  const { t } = useTranslation();
  return <input placeholder={t("Search all files")} />;
}
`
	_, res := analyzeAndTransform(t, "SearchBox.jsx", src)
	assert.Equal(t, want, string(res.Output))
	assert.Equal(t, 1, res.HooksInjected)
	assert.Equal(t, []string{"useTranslation"}, res.ImportsAdded)
}

func TestTransform_ExpressionArrowFollowsFileStyle(t *testing.T) {
	src := "import React from 'react'\n\nexport const Hint = () => <span title='Click to copy the link' />\n"
	want := "import React from 'react'\n" +
		"import { useTranslation } from 'react-i18next'\n\n" +
		"export const Hint = () => {\n" +
		"  const { t } = useTranslation()\n" +
		"  return <span title={t('Click to copy the link')} />\n" +
		"}\n"
	_, res := analyzeAndTransform(t, "Hint.tsx", src)
	assert.Equal(t, want, string(res.Output))
}

func TestTransform_MemoWrappedComponent(t *testing.T) {
	src := "const Card = memo(() => <p title=\"Card details here\" />);\n"
	want := "import { useTranslation } from \"react-i18next\";\n\n" +
		"const Card = memo(() => {\n" +
		"  const { t } = useTranslation();\n" +
		"  return <p title={t(\"Card details here\")} />;\n" +
		"});\n"
	_, res := analyzeAndTransform(t, "Card.jsx", src)
	assert.Equal(t, want, string(res.Output))
	assert.Equal(t, 1, res.HooksInjected)
}

func TestTransform_ImportAfterDirective(t *testing.T) {
	src := `"use client";

export function Notice() {
  return <p>Your session has expired</p>;
}
`
	want := `"use client";
import { Trans } from "react-i18next";

export function Notice() {
  return <p><Trans>Your session has expired</Trans></p>;
}
`
	_, res := analyzeAndTransform(t, "Notice.jsx", src)
	assert.Equal(t, want, string(res.Output))
}

func TestTransform_DefaultImportGainsNamedList(t *testing.T) {
	src := `import i18n from "react-i18next";

export const Footer = () => <footer>All rights reserved</footer>;
`
	_, res := analyzeAndTransform(t, "Footer.jsx", src)
	assert.Contains(t, string(res.Output), `import i18n, { Trans } from "react-i18next";`)
}

func TestTransform_ExistingHookNotDuplicated(t *testing.T) {
	src := `import { useTranslation } from "react-i18next";

function Banner() {
  const { t } = useTranslation();
  const label = "Save your changes";
  return <p>{label}</p>;
}
`
	_, res := analyzeAndTransform(t, "Banner.jsx", src)
	assert.Equal(t, 1, res.WrappedCount)
	assert.Equal(t, 0, res.HooksInjected)
	assert.Empty(t, res.ImportsAdded)
	assert.Contains(t, string(res.Output), `const label = t("Save your changes");`)
	assert.Equal(t, 1, strings.Count(string(res.Output), "useTranslation()"))
}

func TestTransform_CallOutsideComponent(t *testing.T) {
	src := "function describe() { return \"Something went wrong here\"; }\n"
	_, res := analyzeAndTransform(t, "describe.js", src)
	assert.Equal(t, "function describe() { return t(\"Something went wrong here\"); }\n", string(res.Output))
	assert.Equal(t, 0, res.HooksInjected)
	assert.Empty(t, res.ImportsAdded)
}

func TestTransform_TemplateLiteral(t *testing.T) {
	src := "export function Greeting({ name }) {\n" +
		"  const message = `Hello ${name}, welcome back`;\n" +
		"  return <p>{message}</p>;\n" +
		"}\n"
	_, res := analyzeAndTransform(t, "Greeting.jsx", src)
	assert.Contains(t, string(res.Output), "const message = t(\"Hello {name}, welcome back\");")
	assert.Equal(t, 1, res.HooksInjected)
}

const profileSource = `import React from "react";

export function Profile({ name }: { name: string }) {
  const title = "User profile settings";
  console.log("Rendering profile component now");
  return (
    <div className="flex items-center p-4">
      <h1>Welcome to our app</h1>
      <input placeholder="Enter your name" type="text" />
      <img alt="MyLogo" src="/logo.png" />
    </div>
  );
}
`

func TestTransform_RoundTrip(t *testing.T) {
	cands, res := analyzeAndTransform(t, "Profile.tsx", profileSource)
	require.Len(t, cands, 4)

	want := `import React from "react";
import { Trans, useTranslation } from "react-i18next";

export function Profile({ name }: { name: string }) {
  const { t } = useTranslation();
  const title = t("User profile settings");
  console.log("Rendering profile component now");
  return (
    <div className="flex items-center p-4">
      <h1><Trans>Welcome to our app</Trans></h1>
      <input placeholder={t("Enter your name")} type="text" />
      <img alt={t("MyLogo")} src="/logo.png" />
    </div>
  );
}
`
	assert.Equal(t, want, string(res.Output))
	assert.Empty(t, res.Skipped)
	assert.Equal(t, len(cands), res.WrappedCount)
	assert.Equal(t, cands, res.Wrapped)
}

func TestTransform_Idempotent(t *testing.T) {
	_, first := analyzeAndTransform(t, "Profile.tsx", profileSource)

	again, err := analyzer.Analyze("Profile.tsx", first.Output, nil)
	require.NoError(t, err)
	assert.Empty(t, again)

	second, err := Transform("Profile.tsx", first.Output, again, nil)
	require.NoError(t, err)
	assert.Equal(t, string(first.Output), string(second.Output))
	assert.False(t, second.Changed())
}

func TestTransform_LocationMismatch(t *testing.T) {
	src := "export const Title = () => <h1>Welcome to our app</h1>;\n"
	cands, err := analyzer.Analyze("Title.jsx", []byte(src), nil)
	require.NoError(t, err)

	ghost := cands[0]
	ghost.Line, ghost.Column = 99, 0
	res, err := Transform("Title.jsx", []byte(src), []types.WrapCandidate{ghost, cands[0]}, nil)
	require.NoError(t, err)

	assert.Equal(t, []types.WrapCandidate{ghost}, res.Skipped)
	assert.Equal(t, 1, res.WrappedCount)
}

func TestTransform_StrategyMismatch(t *testing.T) {
	src := "export const Title = () => <h1>Welcome to our app</h1>;\n"
	cands, err := analyzer.Analyze("Title.jsx", []byte(src), nil)
	require.NoError(t, err)
	cands[0].Strategy = types.StrategyCallWrap

	res, err := Transform("Title.jsx", []byte(src), cands, nil)
	require.NoError(t, err)
	assert.Equal(t, src, string(res.Output))
	assert.Len(t, res.Skipped, 1)
	assert.Zero(t, res.WrappedCount)
	assert.False(t, res.Changed())
}

func TestTransform_DuplicateKeys(t *testing.T) {
	src := "export const Title = () => <h1>Welcome to our app</h1>;\n"
	cands, err := analyzer.Analyze("Title.jsx", []byte(src), nil)
	require.NoError(t, err)

	res, err := Transform("Title.jsx", []byte(src), append(cands, cands[0]), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.WrappedCount)
	assert.Len(t, res.Skipped, 1)
}

func TestTransform_CustomAdapter(t *testing.T) {
	fa, err := adapter.New(adapter.Spec{Name: "acme", ImportSource: "@acme/i18n", Component: "Msg", Function: "tx", Hook: "useMsg"})
	require.NoError(t, err)

	src := `export function Panel() {
  return <section title="Account overview"><h2>Your recent orders</h2></section>;
}
`
	want := `import { Msg, useMsg } from "@acme/i18n";

export function Panel() {
  const { tx } = useMsg();
  return <section title={tx("Account overview")}><h2><Msg>Your recent orders</Msg></h2></section>;
}
`
	cands, err := analyzer.Analyze("Panel.jsx", []byte(src), fa)
	require.NoError(t, err)
	require.Len(t, cands, 2)

	res, err := Transform("Panel.jsx", []byte(src), cands, fa)
	require.NoError(t, err)
	assert.Equal(t, want, string(res.Output))
	assert.Equal(t, []string{"Msg", "useMsg"}, res.ImportsAdded)
}

func TestTransform_EscapesText(t *testing.T) {
	src := "export const Quote = () => <q title='Say \"hello\" to everyone' />;\n"
	_, res := analyzeAndTransform(t, "Quote.jsx", src)
	assert.Contains(t, string(res.Output), `title={t('Say "hello" to everyone')}`)
}

func TestTransform_ParseFailure(t *testing.T) {
	_, err := Transform("Broken.jsx", []byte("const A = () => <div>;\n"), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestTransform_DefaultParameterLeftAlone(t *testing.T) {
	src := `export function Card({ label = "Hello there friend" }) {
  return <p title="Open the settings panel">{label}</p>;
}
`
	cands, res := analyzeAndTransform(t, "Card.jsx", src)
	require.Len(t, cands, 2)

	out := string(res.Output)
	assert.Contains(t, out, `{ label = "Hello there friend" }`)
	assert.Contains(t, out, `title={t("Open the settings panel")}`)
	assert.Contains(t, out, "const { t } = useTranslation();")
	assert.Equal(t, 1, res.WrappedCount)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "Hello there friend", res.Skipped[0].Text)

	arrow := `export const Badge = ({ text = "Hello there friend" }) => <span>{text}</span>;
`
	_, res = analyzeAndTransform(t, "Badge.jsx", arrow)
	assert.Equal(t, arrow, string(res.Output))
	assert.Zero(t, res.HooksInjected)
	assert.Empty(t, res.ImportsAdded)
	assert.Len(t, res.Skipped, 1)
}
