package services

import (
	"fmt"
	"sort"
	"strings"
)

// formatRecommendation renders the mid -> details map with running item
// numbers, framed by header and footer text.
func formatRecommendation(header string, recommended RecommendationMap, footer string) string {
	lines := []string{strings.TrimSpace(header)}
	idx := 1
	for _, g := range recommended {
		lines = append(lines, fmt.Sprintf("=====  🔷 %s 🔷  =====", g.Mid))
		for _, detail := range g.Details {
			lines = append(lines, fmt.Sprintf("%d. %s", idx, detail))
			idx++
		}
		lines = append(lines, "")
	}
	if f := strings.TrimSpace(footer); f != "" {
		lines = append(lines, f)
	}
	return strings.Join(lines, "\n")
}

// formatCrawledResult renders the fetched option map and asks the user to
// pick from the first attribute.
func formatCrawledResult(data SpecData) string {
	lines := []string{"📋 가져온 옵션 정보입니다:"}
	for _, name := range data.Order {
		lines = append(lines, fmt.Sprintf("=====  🔷 %s 🔷  =====", name))
		opts := data.Attrs[name]
		for i, label := range optionLabels(opts) {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, label))
		}
		lines = append(lines, "")
	}
	if len(data.Order) > 0 {
		lines = append(lines, fmt.Sprintf("먼저 '%s' 중에서 원하시는 항목을 말씀해 주세요!", data.Order[0]))
	}
	return strings.Join(lines, "\n")
}

// formatSelectionConfirm asks the user to confirm the resolved category pair.
func formatSelectionConfirm(midKey, detailKey string) string {
	return fmt.Sprintf(
		"🔍 선택하신 항목은 다음과 같습니다:\n• 카테고리: %s\n• 세부 항목: %s\n\n이 항목으로 진행할까요? 진행을 원하시면 긍정의 의사를 알려주세요.",
		midKey, detailKey)
}

// formatChoiceConfirm echoes the matched option labels joined by ", ".
func formatChoiceConfirm(matched []string) string {
	return fmt.Sprintf("선택하신 항목: %s\n이대로 진행할까요?", strings.Join(matched, ", "))
}

// formatNextAttribute asks for a pick from the next attribute's options.
func formatNextAttribute(name string, opts AttributeOptions) string {
	lines := []string{fmt.Sprintf("다음으로 '%s' 중에서 원하시는 항목을 말씀해 주세요!", name)}
	for i, label := range optionLabels(opts) {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, label))
	}
	return strings.Join(lines, "\n")
}

// formatDrillComplete summarizes both confirmed selections.
func formatDrillComplete(d DrillState) string {
	return fmt.Sprintf(
		"🎉 옵션 선택이 완료되었습니다!\n• %s: %s\n• %s: %s\n다른 상품을 찾으시려면 원하시는 상품을 말씀해 주세요!",
		d.FirstKey, strings.Join(d.FirstSelection, ", "),
		d.SecondKey, strings.Join(d.SecondSelection, ", "))
}

// optionLabels returns an attribute's selectable labels. Nav attributes
// expose their link labels in sorted order for stable display.
func optionLabels(o AttributeOptions) []string {
	if o.Links != nil {
		labels := make([]string, 0, len(o.Links))
		for label := range o.Links {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		return labels
	}
	return o.Labels
}
