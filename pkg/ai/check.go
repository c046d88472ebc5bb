package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/pkg/logger"
)

// ItemVerdict is the moderation oracle's pass/fail decision on a suggested
// item.
type ItemVerdict struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason"`
}

const itemCheckSystemPrompt = `You are an expert content validation AI. Your task is to check whether the provided item is a real, meaningful, and valid object that could plausibly exist in the real world.

You will be given an item with these fields: name, description, category, tags.

You must determine:
1. Whether the name refers to a valid, identifiable, real-world object, product, or concept. It should not be nonsense, gibberish, or inappropriate content.
2. Whether the description correctly and clearly describes the item, matching the name in a factual and coherent way.
3. Whether the item is appropriate (no violence, sexual, hateful, or spam content).

Respond only in valid JSON with this exact format:

{"isValid": true | false, "reason": "Short explanation of why it is valid or invalid."}

Guidelines:
- "isValid" should be true only if both name and description are coherent, realistic, and properly matched.
- If the item name is random letters (e.g. "asdfqwer"), it is invalid.
- If the description does not match the item (e.g. name 'Banana' but description 'a type of shoe'), it is invalid.
- If the item is offensive, nonsensical, or vague, it is invalid.
- If the item is clearly a real product or object (e.g. 'iPhone 15' with a realistic description), it is valid.`

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// CheckItem asks the moderation oracle whether a suggested item is valid.
// When the oracle is unreachable or returns garbage the verdict degrades to
// a rejection, never a silent approval. When the service is not configured
// the check is skipped and the item passes.
func CheckItem(ctx context.Context, name, description, category string, tags []string) ItemVerdict {
	log := logger.L().Named("ai")

	if !IsEnabled() {
		log.Debug("AI content check skipped, service disabled", zap.String("item", name))
		return ItemVerdict{IsValid: true, Reason: "Content check disabled."}
	}

	userMessage := fmt.Sprintf(
		"Now evaluate this item:\n{\"name\": %q, \"description\": %q, \"category\": %q, \"tags\": %q}",
		name, description, category, strings.Join(tags, ", "),
	)

	text, err := generateCompletion(ctx, itemCheckSystemPrompt, userMessage)
	if err != nil {
		log.Error("AI content check failed", zap.String("item", name), zap.Error(err))
		return ItemVerdict{IsValid: false, Reason: "Not able to check at the moment."}
	}

	verdict, err := parseVerdict(text)
	if err != nil {
		log.Error("AI content check returned unparseable output",
			zap.String("item", name), zap.Error(err))
		return ItemVerdict{IsValid: false, Reason: "Not able to check at the moment."}
	}
	return verdict
}

// parseVerdict decodes the oracle's JSON answer, falling back to extracting
// the first JSON object when the model wrapped it in prose or code fences.
func parseVerdict(text string) (ItemVerdict, error) {
	var verdict ItemVerdict
	if err := json.Unmarshal([]byte(text), &verdict); err == nil {
		return verdict, nil
	}

	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return ItemVerdict{}, fmt.Errorf("no JSON object in oracle output")
	}
	if err := json.Unmarshal([]byte(match), &verdict); err != nil {
		return ItemVerdict{}, fmt.Errorf("decode oracle verdict: %w", err)
	}
	return verdict, nil
}
