package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

// User-facing reply strings. The product surface is Korean; keep these
// in one place so the dialogue flow reads cleanly.
const (
	replyEmptyMessage = "메시지가 비어 있어요."
	replyUnknown      = "무슨 뜻인지 잘 모르겠어요."

	replyNeedAmount   = "금액을 알려주세요."
	replyNeedItem     = "항목(상품/가게명)을 알려주세요."
	replyInsertFailed = "저장 처리 중 오류가 발생했어요."

	replyListFailed = "내역 조회 중 오류가 발생했어요."
	replyEmptyList  = "내역이 없어요."
	replySumFailed  = "합계 계산 중 오류가 발생했어요."

	replyNeedNewAmount = "바꿀 금액을 알려주세요."
	replyNoRecent      = "최근 내역이 없어요."
	replyUpdateFailed  = "수정 처리 중 오류가 발생했어요."
	replyNoUpdateMatch = "조건에 맞는 수정 대상이 없어요."

	replyNoDeleteMatch  = "조건에 맞는 삭제 대상이 없어요."
	replyNoDeleteTarget = "삭제할 내역이 없어요."
	replyDeleteDone     = "삭제 완료했어요."
	replyDeleteFailed   = "삭제 처리 중 오류가 발생했어요."

	replyCancelled          = "취소했어요."
	replyConfirmAgain       = "확인/취소 중 하나로 답해주세요. (yes/no)"
	replyNothingToConfirm   = "확인할 항목이 없어요."
	replyInvalidToken       = "확인 토큰이 유효하지 않아요."
	replyUnsupportedConfirm = "지원하지 않는 확인 작업이에요."

	replyNothingToSelect    = "선택할 항목이 없어요."
	replySelectionCancelled = "선택을 취소했어요."
	replySelectionLost      = "바꿀 금액이 없어요. 다시 말씀해 주세요."
	replyUnknownSelection   = "알 수 없는 선택 작업이에요."

	deleteConfirmPrompt = "삭제 확인"
)

const isoDate = "2006-01-02"

func todayISO() string {
	return time.Now().Format(isoDate)
}

// formatEntry renders an entry the way every reply shows one:
// "2025-01-15 스타벅스 6500원".
func formatEntry(e model.Entry) string {
	return fmt.Sprintf("%s %s %d원", e.Date, e.Item, e.Amount)
}

// formatEntries renders a numbered listing with the entry id each line,
// so a selection answer can quote it back.
func formatEntries(entries []model.Entry) string {
	if len(entries) == 0 {
		return replyEmptyList
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d) %s (id:%d)", i+1, formatEntry(e), e.ID)
	}
	return strings.Join(lines, "\n")
}
