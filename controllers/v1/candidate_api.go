package apiv1

import (
	"context"
	"fmt"
	"io"

	"recruit-flow-backend/controllers"
	"recruit-flow-backend/lib/analytics"
	candidatehandler "recruit-flow-backend/lib/candidate"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	filestorage "recruit-flow-backend/lib/file-storage"
	"recruit-flow-backend/middleware"
	apimodels "recruit-flow-backend/models/api"
	candidateapimodels "recruit-flow-backend/models/api/candidate"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.exportXls)
		router.Get("doc/:id", controller.getDoc)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("status", controller.changeStatus)
			idRouter.Put("note", controller.note)
			idRouter.Post("history", controller.history)
			idRouter.Get("results", controller.results)
			idRouter.Post("upload-resume", controller.uploadResume)
			idRouter.Post("upload-doc", controller.uploadDoc)
			idRouter.Get("resume", controller.getResume)
			idRouter.Get("doc/list", controller.getDocList)
		})
	})
}

// @Summary List candidates
// @Tags Candidates
// @Description List candidates with filter and pagination
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	candidateapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/list [post]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.List(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Export candidates to xlsx
// @Tags Candidates
// @Description Export the filtered candidate list to xlsx
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	candidateapimodels.ListFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/export [post]
func (c *candidateApiController) exportXls(ctx *fiber.Ctx) error {
	var payload candidateapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := analytics.Instance.CandidatesExportToXls(dbmodels.CandidateFilter{
		FormID: payload.FormID,
		Status: payload.Status,
		Search: payload.Search,
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Get a candidate
// @Tags Candidates
// @Description Get a candidate profile
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidatehandler.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Change a candidate's status
// @Tags Candidates
// @Description Move a candidate along the pipeline
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Param	body	body	candidateapimodels.StatusChangeRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/status [put]
func (c *candidateApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.StatusChangeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = candidatehandler.Instance.ChangeStatus(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Add a note
// @Tags Candidates
// @Description Add a note to the candidate's history
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Param	body	body	candidateapimodels.NoteRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/note [put]
func (c *candidateApiController) note(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.NoteRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = candidatehistoryhandler.Instance.SaveNote(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Candidate history
// @Tags Candidates
// @Description List the candidate's action history
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Param	body	body	candidateapimodels.HistoryFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/history [post]
func (c *candidateApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.HistoryFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehistoryhandler.Instance.List(id, payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Candidate test results
// @Tags Candidates
// @Description List the candidate's test results
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Success 200 {object} apimodels.Response{data=[]candidateapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/results [get]
func (c *candidateApiController) results(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := candidatehandler.Instance.ListResults(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Upload a candidate's resume
// @Tags Candidates
// @Description Upload a candidate's resume
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Param   resume	formData	file	true	"file to upload"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/upload-resume [post]
func (c *candidateApiController) uploadResume(ctx *fiber.Ctx) error {
	return c.upload(ctx, "resume", filestorage.Instance.UploadResume)
}

// @Summary Upload a candidate's document
// @Tags Candidates
// @Description Upload a candidate's document
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Param   doc	formData	file	true	"file to upload"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/upload-doc [post]
func (c *candidateApiController) uploadDoc(ctx *fiber.Ctx) error {
	return c.upload(ctx, "doc", filestorage.Instance.UploadDoc)
}

func (c *candidateApiController) upload(ctx *fiber.Ctx, field string,
	uploadFunc func(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile(field)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open the uploaded file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("failed to read the uploaded file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = uploadFunc(ctx.UserContext(), candidateID, fileBody, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Download a candidate's resume
// @Tags Candidates
// @Description Download a candidate's resume
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/resume [get]
func (c *candidateApiController) getResume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, info, err := filestorage.Instance.GetResume(ctx.UserContext(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if info == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("resume not found"))
	}
	ctx.Set(fiber.HeaderContentType, info.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", info.Name))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Download a candidate's document
// @Tags Candidates
// @Description Download a candidate's document by file id
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"document ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/doc/{id} [get]
func (c *candidateApiController) getDoc(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, info, err := filestorage.Instance.GetFile(ctx.UserContext(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if info == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("document not found"))
	}
	ctx.Set(fiber.HeaderContentType, info.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", info.Name))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary List a candidate's documents
// @Tags Candidates
// @Description List a candidate's uploaded documents
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"candidate ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/doc/list [get]
func (c *candidateApiController) getDocList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := filestorage.Instance.GetDocList(ctx.UserContext(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
