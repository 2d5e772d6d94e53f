package ldap

/*
common.go holds small generic string/number helpers shared across the DN,
filter and attribute-map implementations. It plays the same supporting role
the upstream go-dirsyn common.go plays for its RFC4512 syntax checkers.
*/

import (
	"bufio"
	"bytes"
	"regexp"
)

func removeWHSP(a string) string {
	return repAll(a, ` `, ``)
}

func streq(a, b string) bool {
	return a == b
}

var commentRe = regexp.MustCompile("#.*")

func removeBashComments(input []byte) (output []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(input))
	for scanner.Scan() {
		stripped := commentRe.ReplaceAllString(scanner.Text(), "")
		if len(stripped) > 0 {
			output = append(output, []byte(stripped+"\n")...)
		}
	}

	return
}

/*
isAttributeDescriptor scans val and judges whether it qualifies as a valid
RFC 4512 descriptor ("descr"): begins with an alpha, ends with an alnum,
and contains only alnums or hyphens with no consecutive hyphens.
*/
func isAttributeDescriptor(val string) bool {
	if len(val) == 0 {
		return false
	}

	if !isAlpha(rune(val[0])) {
		return false
	}

	if !isAlnum(rune(val[len(val)-1])) {
		return false
	}

	var lastHyphen bool
	for i := 0; i < len(val); i++ {
		ch := rune(val[i])
		switch {
		case isAlnum(ch):
			lastHyphen = false
		case ch == '-':
			if lastHyphen {
				return false
			}
			lastHyphen = true
		default:
			return false
		}
	}

	return true
}

func escapeString(x string) (esc string) {
	if len(x) > 0 {
		bld := newStrBuilder()
		for _, z := range x {
			if z > maxASCII {
				for _, c := range []byte(string(z)) {
					bld.WriteString(`\`)
					bld.WriteString(fuint(uint64(c), 16))
				}
			} else {
				bld.WriteRune(z)
			}
		}

		esc = bld.String()
	}

	return
}

/*
splitUnescaped returns an instance of []string based upon an attempt
to split the input str value on separator characters which are NOT
escaped. Escaped separator values are ignored.
*/
func splitUnescaped(str, sep, esc string) (slice []string) {
	slice = split(str, sep)
	for i := len(slice) - 2; i >= 0; i-- {
		if hasSfx(slice[i], esc) {
			slice[i] = slice[i][:len(slice[i])-len(esc)] + sep + slice[i+1]
			slice = append(slice[:i+1], slice[i+2:]...)
		}
	}

	return
}

/*
strInSlice returns a Boolean value indicative of the presence of r within
the input slice value. By default matching is case-insensitive; pass true
as cEM to require exact case.
*/
func strInSlice(r any, slice []string, cEM ...bool) (match bool) {
	funk := eqf
	if len(cEM) > 0 && cEM[0] {
		funk = streq
	}

	switch tv := r.(type) {
	case string:
		for i := 0; i < len(slice) && !match; i++ {
			match = funk(tv, slice[i])
		}
	case []string:
		for i := 0; i < len(tv) && !match; i++ {
			for j := 0; j < len(slice) && !match; j++ {
				match = funk(tv[i], slice[j])
			}
		}
	}

	return
}

func isUnsignedNumber(x string) bool {
	return isNumber(x) && !hasPfx(x, `-`)
}

func isNumber(x string) bool {
	x = trimPfx(x, `-`)
	if len(x) == 0 {
		return false
	}
	for _, c := range x {
		if !('0' <= rune(c) && rune(c) <= '9') {
			return false
		}
	}

	return true
}

func assertString(x any, min int, name string) (str string, err error) {
	switch tv := x.(type) {
	case []byte:
		str, err = assertString(string(tv), min, name)
	case string:
		if len(tv) < min && min != 0 {
			err = errorBadLength(name, 0)
			break
		}
		str = tv
	default:
		err = errorBadType(name)
	}

	return
}

/*
condenseWHSP returns input as a string with all contiguous WHSP characters
(space, TAB or newline) condensed into single space characters, trimmed at
both ends.
*/
func condenseWHSP(input any) (a string) {
	var b string
	switch tv := input.(type) {
	case string:
		b = tv
	case []byte:
		b = string(tv)
	default:
		return ``
	}

	b = trimS(b)

	var last bool
	for i := 0; i < len(b); i++ {
		c := rune(b[i])
		switch c {
		case rune(9), rune(10), rune(32):
			if !last {
				last = true
				a += string(rune(32))
			}
		default:
			last = false
			a += string(c)
		}
	}

	a = trimS(a)
	return
}

// percentDecode decodes percent-encoded octets in an RFC3986 / RFC4516 URL
// component, used by Dial when parsing an ldap:// search URL extension.
func percentDecode(s string) (dec string, err error) {
	result := newStrBuilder()

	for i := 0; i < len(s); {
		if s[i] == '%' {
			if i+2 >= len(s) {
				err = errorTxt("invalid percent encoding: incomplete sequence")
				break
			}

			hexDigits := s[i+1 : i+3]
			var num uint64
			if num, err = puint(hexDigits, 16, 8); err != nil {
				err = errorTxt("invalid percent encoding \"" + hexDigits + "\": " + err.Error())
				break
			}

			result.WriteByte(byte(num))
			i += 3
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	if err == nil {
		dec = result.String()
	}

	return
}

// splitAndTrim splits a string by the given separator and trims spaces
// from each resulting element, discarding empty elements.
func splitAndTrim(s, sep string) []string {
	raw := split(s, sep)
	var parts []string
	for _, part := range raw {
		if trimmed := trimS(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isUAlpha(r rune) bool {
	return 'A' <= r && r <= 'Z'
}

func isLAlpha(r rune) bool {
	return 'a' <= r && r <= 'z'
}

func isAlpha(r rune) bool {
	return isLAlpha(r) || isUAlpha(r)
}

func isAlnum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// isAlphaNumeric is an alias of isAlnum kept for RFC4512 descriptor grammar
// where the ABNF production is named distinctly from keychar.
func isAlphaNumeric(r rune) bool {
	return isAlnum(r)
}

func isHex(char rune) bool {
	return isDigit(char) || ('a' <= char && char <= 'f') || ('A' <= char && char <= 'F')
}
