package lottery

// 당첨 번호 개수와 공 번호 범위 (로또 6/45)
const (
	WinningNumberCount = 6
	MinBall            = 1
	MaxBall            = 45
)

// PrizeTier는 등수별 당첨금 정보입니다
type PrizeTier struct {
	PrizeAmount  int64 `json:"prize_amount"`   // 등위별 총 당첨금액 (원)
	WinnersCount int64 `json:"winners_count"`  // 당첨 게임 수
	PerGamePrize int64 `json:"per_game_prize"` // 1게임당 당첨금액 (원)
}

// DrawRecord는 한 회차의 당첨 결과입니다
type DrawRecord struct {
	DrawNo         int               `json:"draw_no"`
	DrawDate       string            `json:"draw_date"` // YYYY/MM/DD
	WinningNumbers []int             `json:"winning_numbers"`
	BonusNumber    int               `json:"bonus_number"`
	PrizeTiers     map[int]PrizeTier `json:"prize_tiers"`
}

// NewPrizeTier는 1게임당 당첨금을 계산해 PrizeTier를 만듭니다.
// 당첨 게임 수가 0이면 1게임당 당첨금도 0입니다.
func NewPrizeTier(prizeAmount, winnersCount int64) PrizeTier {
	var perGame int64
	if winnersCount > 0 {
		perGame = prizeAmount / winnersCount
	}
	return PrizeTier{
		PrizeAmount:  prizeAmount,
		WinnersCount: winnersCount,
		PerGamePrize: perGame,
	}
}
