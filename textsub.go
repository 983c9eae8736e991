package mapevent

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	variableRe    = regexp.MustCompile(`\\[Vv]\[(\d+)\]`)
	entityIndexRe = regexp.MustCompile(`(?i)\\EVNAME\[(\d+)\]`)
	entitySelfRe  = regexp.MustCompile(`(?i)\\(?:EVNAME|ENAME|EN)`)
	mapNameRe     = regexp.MustCompile(`(?i)\\MAPNAME`)
)

// Literal placeholders accepted from Japanese-authored content.
const (
	selfNameLiteral = "このイベントの名前"
	mapNameLiteral  = "このマップ名"
)

// TextContext supplies the values text placeholders expand to.
type TextContext struct {
	Vars   Variables
	Map    Map
	Entity *Entity // the entity the text is evaluated for, may be nil
}

// ExpandText resolves placeholders in s and trims the result:
//
//	\V[n]        numeric variable n
//	\EVNAME[n]   name of entity n
//	\EVNAME      name of the evaluating entity (also \ENAME, \EN)
//	\MAPNAME     display name of the current map
//
// Unknown or unset values expand to "".
func ExpandText(s string, ctx TextContext) string {
	if s == "" {
		return ""
	}
	out := expandVariables(s, ctx.Vars)

	var selfName, mapName string
	if ctx.Entity != nil {
		selfName = ctx.Entity.Name
	}
	if ctx.Map != nil {
		mapName = ctx.Map.DisplayName()
	}

	out = entityIndexRe.ReplaceAllStringFunc(out, func(m string) string {
		id, _ := strconv.Atoi(entityIndexRe.FindStringSubmatch(m)[1])
		if ctx.Map == nil {
			return ""
		}
		if e := ctx.Map.Entity(id); e != nil {
			return e.Name
		}
		return ""
	})
	out = entitySelfRe.ReplaceAllLiteralString(out, selfName)
	out = mapNameRe.ReplaceAllLiteralString(out, mapName)
	out = strings.ReplaceAll(out, selfNameLiteral, selfName)
	out = strings.ReplaceAll(out, mapNameLiteral, mapName)
	return strings.TrimSpace(out)
}

// expandVariables replaces \V[n] with the value of variable n.
func expandVariables(s string, vars Variables) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	return variableRe.ReplaceAllStringFunc(s, func(m string) string {
		if vars == nil {
			return ""
		}
		id, _ := strconv.Atoi(variableRe.FindStringSubmatch(m)[1])
		v, ok := vars.Variable(id)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	})
}
