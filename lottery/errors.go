package lottery

import "errors"

var (
	// ErrInvalidDrawNo는 1 미만의 회차 번호입니다
	ErrInvalidDrawNo = errors.New("잘못된 회차 번호")
	// ErrFetchFailure는 전송 오류 또는 200이 아닌 응답입니다
	ErrFetchFailure = errors.New("당첨 결과 페이지 조회 실패")

	ErrMissingWinningNumbers = errors.New("당첨 번호를 찾을 수 없습니다")
	ErrMalformedDrawDate     = errors.New("추첨일 형식이 올바르지 않습니다")
	ErrMissingDrawNo         = errors.New("회차 정보를 찾을 수 없습니다")
)
