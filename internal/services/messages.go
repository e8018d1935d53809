package services

// User-facing Korean messages. Oracle faults and negatives collapse onto the
// same apology texts so internal failure modes stay invisible to the user.
const (
	msgCategoryNotFound = "카테고리를 찾지 못했습니다."
	msgServiceTrouble   = "죄송합니다. 현재 서비스에 문제가 있습니다. 다시 시도해 주세요."
	msgNotUnderstood    = "죄송합니다. 입력하신 내용을 이해하지 못했습니다. 다시 한번 시도해 주세요."
	msgNoSuitable       = "죄송합니다. 적합한 카테고리를 찾지 못했습니다. 다시 시도해 주세요."
	msgURLNotFound      = "죄송합니다. 카테고리 URL을 찾지 못했습니다."
	msgCrawlFailed      = "죄송합니다. 크롤링에 실패했습니다. 다시 시도해 주세요."
	msgBackToStart      = "✅ 이전 단계로 돌아갑니다. 원하시는 상품을 다시 말씀해 주세요!"
	msgContinuing       = "작업을 계속 진행합니다…"
	msgNavUnsupported   = "🔗 관련 링크 항목은 아직 지원하지 않습니다. 처음부터 다시 시작할게요. 원하시는 상품을 말씀해 주세요!"
	msgNothingToAsk     = "더 여쭤볼 옵션이 없습니다. 처음부터 다시 시작할게요. 원하시는 상품을 말씀해 주세요!"

	msgAuthFirstVisit = "🔐 인증이 필요합니다. 처음 방문하셨군요!\n[여기서 인증하기](%s)"
	msgAuthRetry      = "❌ 이전 인증이 실패했습니다. 다시 시도해 주세요!\n[여기서 인증하기](%s)"
	msgAuthExpired    = "⏳ 인증이 만료되었습니다. 다시 인증해 주세요.\n[여기서 재인증하기](%s)"
	msgAuthWelcome    = "✅ 인증이 완료되었습니다. 카테고리를 추천해 드리겠습니다. 원하는 상품을 말씀해 주세요~!"
)
