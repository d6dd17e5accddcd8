package report

import "strings"

type Category string

const (
	CategoryKickstarters Category = "kickstarters"
	CategoryBeer         Category = "beer"
	CategoryDrinks       Category = "drinks"
	CategoryMerch        Category = "merch"
	CategoryDesserts     Category = "desserts"
	CategorySpirits      Category = "spirits"
)

type Channel string

const (
	ChannelSquareOnline Channel = "squareOnline"
	ChannelDoorDash     Channel = "doorDash"
	ChannelInStore      Channel = "inStore"
)

// Classifier maps free-text item names to product categories and
// order source labels to sales channels. It sits behind an interface
// so the keyword matcher can be swapped for a catalog lookup without
// touching the aggregator.
type Classifier interface {
	Item(name string) (Category, bool)
	Channel(source string) Channel
}

type categoryRule struct {
	category Category
	keywords []string
}

type channelRule struct {
	channel  Channel
	keywords []string
}

// Rule order is fixed and first match wins: a name matching several
// keyword sets ("root beer float") lands in the earliest category.
var categoryRules = []categoryRule{
	{CategoryKickstarters, []string{"wings", "nachos", "fries", "calamari", "pretzel", "dip", "slider", "kickstarter", "starter"}},
	{CategoryBeer, []string{"ipa", "lager", "pilsner", "stout", "ale", "beer", "draft", "hefeweizen", "porter"}},
	{CategoryDrinks, []string{"soda", "iced tea", "lemonade", "coffee", "espresso", "latte", "juice", "kombucha"}},
	{CategoryMerch, []string{"shirt", "hoodie", "gift card", "sticker", "tote", "merch", "pint glass", "beanie"}},
	{CategoryDesserts, []string{"cake", "brownie", "sundae", "ice cream", "pie", "cookie", "churro", "float", "dessert"}},
	{CategorySpirits, []string{"whiskey", "vodka", "tequila", "bourbon", "margarita", "martini", "old fashioned", "negroni", "cocktail", "spritz"}},
}

var channelRules = []channelRule{
	{ChannelSquareOnline, []string{"square online", "online", "ecom", "web"}},
	{ChannelDoorDash, []string{"doordash", "uber eats", "grubhub", "postmates"}},
}

type keywordClassifier struct{}

// NewKeywordClassifier returns the substring-matching classifier used
// in production.
func NewKeywordClassifier() Classifier {
	return keywordClassifier{}
}

func (keywordClassifier) Item(name string) (Category, bool) {
	lowered := strings.ToLower(name)
	if strings.TrimSpace(lowered) == "" {
		return "", false
	}
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// Channel defaults to in-store: walk-in orders carry no source label.
func (keywordClassifier) Channel(source string) Channel {
	lowered := strings.ToLower(strings.TrimSpace(source))
	if lowered == "" {
		return ChannelInStore
	}
	for _, rule := range channelRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.channel
			}
		}
	}
	return ChannelInStore
}
