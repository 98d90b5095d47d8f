package mathml

import (
	"fmt"
	"strconv"

	"github.com/cardiosim/exprgen/internal/expr"
)

// parseNumber decodes the four supported <cn> encodings: plain decimal,
// arbitrary-base integer, e-notation (mantissa and exponent as two
// fragments), and rational (numerator and denominator as two fragments).
// The decoded text is handed to the number factory, which attaches the
// unit tag when one is stated.
func (p *parser) parseNumber(el *Element) (expr.Number, error) {
	units, _ := el.Attr("units")
	typ, _ := el.Attr("type")

	var text string
	switch typ {
	case "", "real":
		if base, ok := el.Attr("base"); ok && base != "10" {
			return expr.Number{}, &LiteralError{
				Reason:  fmt.Sprintf("base %s real numbers are not supported", base),
				Element: el,
			}
		}
		var err error
		text, err = p.soleFragment(el)
		if err != nil {
			return expr.Number{}, err
		}

	case "integer":
		raw, err := p.soleFragment(el)
		if err != nil {
			return expr.Number{}, err
		}
		base := 10
		if b, ok := el.Attr("base"); ok {
			base, err = strconv.Atoi(b)
			if err != nil || base < 2 || base > 36 {
				return expr.Number{}, &LiteralError{
					Reason:  fmt.Sprintf("invalid integer base %q", b),
					Element: el,
				}
			}
		}
		v, err := strconv.ParseInt(raw, base, 64)
		if err != nil {
			return expr.Number{}, &LiteralError{
				Reason:  fmt.Sprintf("not a base-%d integer: %q", base, raw),
				Element: el,
			}
		}
		text = strconv.FormatInt(v, 10)

	case "e-notation":
		mantissa, exponent, err := p.twoFragments(el, "mantissa and exponent")
		if err != nil {
			return expr.Number{}, err
		}
		text = mantissa + "e" + exponent

	case "rational":
		numText, denText, err := p.twoFragments(el, "numerator and denominator")
		if err != nil {
			return expr.Number{}, err
		}
		num, err1 := strconv.ParseFloat(numText, 64)
		den, err2 := strconv.ParseFloat(denText, 64)
		if err1 != nil || err2 != nil {
			return expr.Number{}, &LiteralError{Reason: "rational parts must be numbers", Element: el}
		}
		if den == 0 {
			return expr.Number{}, &LiteralError{Reason: "rational with zero denominator", Element: el}
		}
		text = strconv.FormatFloat(num/den, 'g', -1, 64)

	default:
		return expr.Number{}, &LiteralError{
			Reason:  fmt.Sprintf("unsupported literal type %q", typ),
			Element: el,
		}
	}

	n, err := p.opts.MakeNumber(text, units)
	if err != nil {
		return expr.Number{}, &LiteralError{Reason: err.Error(), Element: el}
	}
	return n, nil
}

func (p *parser) soleFragment(el *Element) (string, error) {
	switch len(el.Fragments) {
	case 1:
		if el.Fragments[0] == "" {
			break
		}
		return el.Fragments[0], nil
	case 0:
	default:
		return "", &LiteralError{Reason: "unexpected separator in literal", Element: el}
	}
	return "", &LiteralError{Reason: "empty literal", Element: el}
}

func (p *parser) twoFragments(el *Element, what string) (string, string, error) {
	if len(el.Fragments) != 2 || el.Fragments[0] == "" || el.Fragments[1] == "" {
		return "", "", &LiteralError{
			Reason:  fmt.Sprintf("expecting %s separated by <sep/>", what),
			Element: el,
		}
	}
	return el.Fragments[0], el.Fragments[1], nil
}
