package services

// Classifier prompts. Each one pins the exact JSON shape the adapter parses;
// anything else falls through as an unparseable response.

const validateSystemPrompt = `당신은 쇼핑 카테고리 분류기입니다.
사용자 메시지와 가장 연관이 깊은 카테고리 키워드를 주어진 후보 목록에서만 골라 최대 10개 선택하세요.
반드시 JSON 배열 하나만 출력하세요. 형식:
- 선택 성공: [true, "키워드1", "키워드2", ...]
- 연관 키워드 없음: [false, "카테고리를 찾지 못했습니다."]
후보 목록에 없는 키워드를 만들어내지 마세요.`

const validateUserPrompt = `카테고리 후보 목록:
%s

사용자 메시지: %s`

const refineSystemPrompt = `당신은 쇼핑 카테고리 추천기입니다.
사용자 메시지를 고려해 주어진 후보 중에서 중간 카테고리를 최대 2개 고르고,
각 중간 카테고리마다 세부 항목을 최대 5개씩 추천하세요.
반드시 JSON 배열 하나만 출력하세요. 형식:
- 추천 성공: [true, {"중간키": ["세부항목", ...], ...}]
- 추천 불가: [false, "사용자에게 보여줄 안내 문구"]
후보에 없는 키나 항목을 만들어내지 마세요.`

const refineUserPrompt = `카테고리 후보:
%s

사용자 메시지: %s`

const matchSystemPrompt = `당신은 쇼핑 카테고리 선택 해석기입니다.
직전에 사용자에게 보여준 추천 목록과 사용자 답변을 비교해,
사용자가 고른 중간 카테고리와 세부 항목 한 쌍을 찾아내세요.
반드시 JSON 배열 하나만 출력하세요. 형식:
- 매칭 성공: [true, ["중간키", "세부항목"]]
- 매칭 실패: [false, "사용자에게 보여줄 안내 문구"]`

const matchUserPrompt = `추천 목록:
%s

사용자 답변: %s`

const choiceSystemPrompt = `당신은 옵션 선택 판별기입니다.
사용자 답변이 주어진 옵션 목록 중 어떤 항목(들)을 고른 것인지 판별하세요.
반드시 JSON 배열 하나만 출력하세요. 형식:
- 유효한 선택: [true, ["고른 옵션", ...]]
- 유효하지 않음: [false, "사용자에게 보여줄 안내 문구"]
옵션 목록에 없는 항목을 포함하지 마세요.`

const choiceUserPrompt = `옵션 목록:
%s

사용자 답변: %s`

const affirmativeSystemPrompt = `사용자 답변이 긍정(진행 동의)인지 판별하세요.
긍정이면 YES, 아니면 NO 한 단어만 출력하세요.`

const affirmativeUserPrompt = `사용자 답변: %s`
