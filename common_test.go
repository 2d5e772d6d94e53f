package ldap

import (
	"os"
	"testing"
)

func TestMisc_codecov(t *testing.T) {
	b64dec([]byte{0x0, 0x1, 0x2, 0xff})
	isBase64([]byte{0x0, 0x1, 0x2, 0xff})
	isBase64(``)
	isBase64(struct{}{})

	enchex([]byte(`ABC`))
	hexdec(`4142`)

	condenseWHSP(`this   has    spaces`)
	condenseWHSP([]byte(`tabs	too`))
	condenseWHSP(42)

	percentDecode(`%2f%%`)
	if _, err := percentDecode(`%2`); err == nil {
		t.Errorf("percentDecode: expected error on truncated sequence")
	}

	if !isAttributeDescriptor(`cn`) {
		t.Errorf("isAttributeDescriptor: cn should be valid")
	}
	isAttributeDescriptor(``)
	isAttributeDescriptor(`9a`)
	isAttributeDescriptor(`l-`)
	isAttributeDescriptor(`l--l`)

	strInSlice(`this`, []string{`is`, `data`}, true)
	strInSlice(`this`, []string{`THIS`, `data`})

	if isNumber(``) {
		t.Errorf("isNumber: empty string should not be a number")
	}
	if !isNumber(`01999`) {
		t.Errorf("isNumber: 01999 should be a number")
	}
	if !isUnsignedNumber(`1999`) {
		t.Errorf("isUnsignedNumber: 1999 should be unsigned")
	}
	if isUnsignedNumber(`-1999`) {
		t.Errorf("isUnsignedNumber: -1999 should not be unsigned")
	}

	if _, err := assertString(``, 0, "name"); err != nil {
		t.Errorf("assertString: unexpected error: %v", err)
	}
	if _, err := assertString([]byte{0x0}, 1, "name"); err == nil {
		t.Errorf("assertString: expected error for short input")
	}
	if _, err := assertString(42, 0, "name"); err == nil {
		t.Errorf("assertString: expected error for bad type")
	}

	splitAndTrim(`a, b ,c`, `,`)
	splitUnescaped(`a\,b,c`, `,`, `\`)

	for _, r := range []rune{'0', 'a', 'Z', '-'} {
		isAlnum(r)
		isHex(r)
	}
}

func writeTemporaryFile(name string, content []byte) (file *os.File, err error) {
	file, err = os.CreateTemp("", name)
	if err != nil {
		return
	}

	_, err = file.Write(content)
	return
}

func deleteTemporaryFile(file *os.File) error {
	return os.Remove(file.Name())
}
