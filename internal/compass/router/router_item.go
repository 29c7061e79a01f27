package router

import (
	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/http"
	"github.com/go-compass/compass/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/23
 * @file: router_item.go
 * @description: SharedItem 路由
 */

func (rt *Router) itemRouter(r fiber.Router, auth fiber.Handler) {
	itemGroup := r.Group("/item")
	{
		// 创建条目
		itemGroup.Post("/create", auth, rt.createItem)

		// 获取条目详情
		itemGroup.Get("/:itemId", auth, rt.getItem)

		// 更新条目（last-write-wins）
		itemGroup.Put("/:itemId", auth, rt.updateItem)

		// 删除条目
		itemGroup.Delete("/:itemId", auth, rt.deleteItem)

		// 分发条目
		itemGroup.Post("/:itemId/distribute", auth, rt.distributeItem)

		// 条目的投影列表
		itemGroup.Get("/:itemId/projections", auth, rt.listItemProjections)
	}
}

// createItem 创建条目
func (rt *Router) createItem(c *fiber.Ctx) error {
	var req model.CreateItemReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create item failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Item.CreateItem(currentUser(c), &req)
	if err != nil {
		log.Errorf("create item failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// getItem 获取条目详情
func (rt *Router) getItem(c *fiber.Ctx) error {
	itemId := c.Params("itemId")
	if itemId == "" {
		return http.WithRepErrMsg(c, http.ItemIdIsEmpty.Code, http.ItemIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Item.GetItem(currentUser(c), itemId)
	if err != nil {
		log.Errorf("get item failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// updateItem 更新条目
func (rt *Router) updateItem(c *fiber.Ctx) error {
	itemId := c.Params("itemId")
	if itemId == "" {
		return http.WithRepErrMsg(c, http.ItemIdIsEmpty.Code, http.ItemIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateItemReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update item failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Item.UpdateItem(currentUser(c), itemId, &req)
	if err != nil {
		log.Errorf("update item failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// deleteItem 删除条目
func (rt *Router) deleteItem(c *fiber.Ctx) error {
	itemId := c.Params("itemId")
	if itemId == "" {
		return http.WithRepErrMsg(c, http.ItemIdIsEmpty.Code, http.ItemIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Item.DeleteItem(currentUser(c), itemId); err != nil {
		log.Errorf("delete item failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// distributeItem 分发条目
func (rt *Router) distributeItem(c *fiber.Ctx) error {
	itemId := c.Params("itemId")
	if itemId == "" {
		return http.WithRepErrMsg(c, http.ItemIdIsEmpty.Code, http.ItemIdIsEmpty.Msg, c.Path())
	}

	var req model.DistributeReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("distribute item failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Distribution.Distribute(currentUser(c), itemId, &req)
	if err != nil {
		log.Errorf("distribute item failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listItemProjections 条目的投影列表
func (rt *Router) listItemProjections(c *fiber.Ctx) error {
	itemId := c.Params("itemId")
	if itemId == "" {
		return http.WithRepErrMsg(c, http.ItemIdIsEmpty.Code, http.ItemIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Projection.ListByItem(currentUser(c), itemId)
	if err != nil {
		log.Errorf("list item projections failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}
