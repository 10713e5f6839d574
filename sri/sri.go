package sri

import (
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io/ioutil"

	"github.com/put0/imgshrink/util"
)

// CalculateFileSRI generates a Subresource Integrity string for a particular file.
func CalculateFileSRI(filepath string) (string, error) {
	bytes, err := ioutil.ReadFile(filepath)
	if err != nil {
		return "", err
	}
	return CalculateSRI(bytes), nil
}

// CalculateSRI calculates a Subresource Integrity string from bytes.
func CalculateSRI(bytes []byte) string {
	h := sha512.New()
	_, err := h.Write(bytes)
	util.Check(err)

	sri := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("sha512-%s", sri)
}
