package services

import (
	"strings"
	"testing"
)

func TestFormatRecommendationNumbersRunAcrossGroups(t *testing.T) {
	m := RecommendationMap{
		{Mid: "오일/첨가제/필터", Details: []string{"엔진오일", "에어필터"}},
		{Mid: "세차/와이퍼/방향제", Details: []string{"세차용품"}},
	}
	got := formatRecommendation("추천 결과입니다:", m, "원하시는 항목 번호를 입력해 주세요!")

	for _, want := range []string{
		"추천 결과입니다:",
		"=====  🔷 오일/첨가제/필터 🔷  =====",
		"1. 엔진오일",
		"2. 에어필터",
		"=====  🔷 세차/와이퍼/방향제 🔷  =====",
		"3. 세차용품",
		"원하시는 항목 번호를 입력해 주세요!",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "4.") {
		t.Fatalf("unexpected item number in:\n%s", got)
	}
}

func TestFormatCrawledResultAsksForFirstAttribute(t *testing.T) {
	got := formatCrawledResult(sampleSpecData())
	if !strings.Contains(got, "=====  🔷 색상 🔷  =====") {
		t.Fatalf("missing attribute header in:\n%s", got)
	}
	if !strings.Contains(got, "먼저 '색상' 중에서 원하시는 항목을 말씀해 주세요!") {
		t.Fatalf("missing first-attribute prompt in:\n%s", got)
	}
	if strings.Index(got, "색상") > strings.Index(got, "사이즈") {
		t.Fatalf("attribute order lost in:\n%s", got)
	}
}

func TestFormatChoiceConfirmJoinsWithComma(t *testing.T) {
	got := formatChoiceConfirm([]string{"빨강", "검정"})
	if !strings.Contains(got, "빨강, 검정") {
		t.Fatalf("selections not joined by \", \":\n%s", got)
	}
}

func TestOptionLabelsNavSorted(t *testing.T) {
	o := AttributeOptions{Links: map[string]string{"나": "https://b", "가": "https://a"}}
	labels := optionLabels(o)
	if len(labels) != 2 || labels[0] != "가" || labels[1] != "나" {
		t.Fatalf("nav labels not sorted: %v", labels)
	}
}
