package hash

import "golang.org/x/crypto/bcrypt"

// Cost 與舊資料相容
const Cost = 10

// Author 作者名稱以 bcrypt 雜湊後儲存
func Author(name string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(name), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// MatchAuthor 比對明文名稱與雜湊
func MatchAuthor(hashed, name string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(name)) == nil
}
