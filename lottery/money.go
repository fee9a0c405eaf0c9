package lottery

import (
	"strconv"
	"strings"
)

// FormatMoney는 숫자를 천 단위 구분자가 있는 문자열로 변환합니다
func FormatMoney(amount int64) string {
	str := strconv.FormatInt(amount, 10)
	sign := ""
	if amount < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
