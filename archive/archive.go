package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"lottohistory/lottery"
)

// Save는 당첨 결과 목록을 JSON 배열로 저장합니다.
// 들여쓰기는 4칸이며 한글과 HTML 문자는 이스케이프하지 않습니다.
func Save(path string, records []lottery.DrawRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("출력 디렉토리 생성 실패: %w", err)
		}
	}

	data, err := Marshal(records)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	return nil
}

// Marshal은 Save가 쓰는 것과 같은 형식으로 직렬화합니다
func Marshal(records []lottery.DrawRecord) ([]byte, error) {
	if records == nil {
		records = []lottery.DrawRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("JSON 마샬링 실패: %w", err)
	}
	return buf.Bytes(), nil
}

// Load는 저장된 당첨 결과 목록을 읽어옵니다
func Load(path string) ([]lottery.DrawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("파일 읽기 실패: %w", err)
	}

	var records []lottery.DrawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("JSON 파싱 실패: %w", err)
	}
	return records, nil
}
