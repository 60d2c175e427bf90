package models

import "time"

type ActionType string

const (
	ActionRewardClaimed    ActionType = "reward_claimed"
	ActionRewardDelivered  ActionType = "reward_delivered"
	ActionItemPurchase     ActionType = "item_purchase"
	ActionBattlePassCreate ActionType = "battle_pass_create"
	ActionRewardCreate     ActionType = "reward_create"
	ActionShopItemCreate   ActionType = "shop_item_create"
	ActionShopItemUpdate   ActionType = "shop_item_update"
	ActionPremiumPurchase  ActionType = "premium_purchase"
	ActionAdmin            ActionType = "admin_action"
)

type ActionLog struct {
	ID          string         `json:"id"`
	ActionType  ActionType     `json:"action_type"`
	UserID      string         `json:"user_id,omitempty"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
