package main

import (
	"sort"

	"github.com/fwojciec/urlx"
	urlxyaml "github.com/fwojciec/urlx/yaml"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	def := urlx.Null()
	if c.Default != "" {
		n, err := urlx.ParseJSON(c.Default)
		if err != nil {
			return fail(deps, urlx.Errorf(urlx.EINVALID, "default is not valid JSON: %v", err))
		}
		def = n
	}

	doc, err := loadDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	return writeNode(deps.Stdout, urlx.NewIndex(doc).Get(c.Path, def))
}

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	var def []urlx.Node
	if c.Default != "" {
		n, err := urlx.ParseJSON(c.Default)
		if err != nil || n.Kind() != urlx.KindSequence {
			return fail(deps, urlx.Errorf(urlx.EINVALID, "default must be a JSON array"))
		}
		def = n.Items()
	}

	doc, err := loadDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	matches, err := urlx.NewIndex(doc).Find(c.Pattern, def)
	if err != nil {
		return fail(deps, err)
	}
	return writeNode(deps.Stdout, urlx.Sequence(matches...))
}

// Run executes the map command.
func (c *MapCmd) Run(deps *Dependencies) error {
	fields, err := urlxyaml.LoadFieldMap(c.Fields)
	if err != nil {
		return fail(deps, err)
	}

	doc, err := loadDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	out, err := urlx.NewIndex(doc).Map(fields)
	if err != nil {
		return fail(deps, err)
	}

	names := make([]string, 0, len(out))
	for name := range out {
		names = append(names, name)
	}
	sort.Strings(names)

	members := make([]urlx.Member, len(names))
	for i, name := range names {
		members[i] = urlx.Member{Key: name, Value: out[name]}
	}
	return writeNode(deps.Stdout, urlx.Mapping(members...))
}
