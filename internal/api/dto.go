package api

import (
	"time"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

type orderInfo struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Process      string `json:"process"`
	Quantity     int    `json:"quantity"`
	CompletedQty int    `json:"completedQty"`
	OrderStatus  string `json:"orderStatus"`
}

type statusInfo struct {
	Reason  string `json:"reason,omitempty"`
	Product string `json:"product,omitempty"`
}

// itemView is the timeline item as the rendering surface consumes it.
type itemView struct {
	ID             string            `json:"id"`
	Group          string            `json:"group"`
	Area           string            `json:"area"`
	TimeLineStatus schedule.Status   `json:"timeLineStatus"`
	Label          string            `json:"label"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	PlanStart      *time.Time        `json:"planStart,omitempty"`
	PlanEnd        *time.Time        `json:"planEnd,omitempty"`
	ActualStart    *time.Time        `json:"actualStart,omitempty"`
	ActualEnd      *time.Time        `json:"actualEnd,omitempty"`
	OrderInfo      *orderInfo        `json:"orderInfo,omitempty"`
	StatusInfo     *statusInfo       `json:"statusInfo,omitempty"`
	Editable       schedule.Editable `json:"editable"`
}

func viewOf(it schedule.Item) itemView {
	v := itemView{
		ID:             it.ID,
		Group:          it.Group,
		Area:           it.Area,
		TimeLineStatus: it.Status,
		Label:          it.Status.Label(),
		Start:          it.Start,
		End:            it.End,
		PlanStart:      it.PlanStart,
		PlanEnd:        it.PlanEnd,
		ActualStart:    it.ActualStart,
		ActualEnd:      it.ActualEnd,
		Editable:       it.Editable,
	}
	if o := it.Order; o != nil {
		v.OrderInfo = &orderInfo{
			ProductID:    o.ProductID,
			ProductName:  o.ProductName,
			Process:      o.Process,
			Quantity:     o.Quantity,
			CompletedQty: o.CompletedQty,
			OrderStatus:  o.OrderStatus,
		}
	}
	if m := it.Machine; m != nil {
		v.StatusInfo = &statusInfo{Reason: m.Reason, Product: m.Product}
	}
	return v
}

func viewsOf(items []schedule.Item) []itemView {
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		views = append(views, viewOf(it))
	}
	return views
}

func (o *orderInfo) domain() *schedule.OrderInfo {
	if o == nil {
		return nil
	}
	return &schedule.OrderInfo{
		ProductID:    o.ProductID,
		ProductName:  o.ProductName,
		Process:      o.Process,
		Quantity:     o.Quantity,
		CompletedQty: o.CompletedQty,
		OrderStatus:  o.OrderStatus,
	}
}

// itemRequest is the body of create and update intents. Times accept any
// layout the record transformer accepts; zone-less values use the server zone.
type itemRequest struct {
	Group          *string     `json:"group"`
	TimeLineStatus *string     `json:"timeLineStatus"`
	Start          *string     `json:"start"`
	End            *string     `json:"end"`
	OrderInfo      *orderInfo  `json:"orderInfo"`
	StatusInfo     *statusInfo `json:"statusInfo"`
}

type switchRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}
