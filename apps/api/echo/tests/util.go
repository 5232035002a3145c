package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/SaqibAli36/Indoor-Navigation-System/apps/api/echo"
	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/exam"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/timetable"
	emailsvc "github.com/SaqibAli36/Indoor-Navigation-System/services/email"
	inmemdb "github.com/SaqibAli36/Indoor-Navigation-System/storage/database/inmem"
	testutil "github.com/SaqibAli36/Indoor-Navigation-System/tests"
)

const sessionCookie = "inav_session"

var (
	conf     *core.Config
	acctRepo account.Repository
	acctSvc  *account.Service
	roomRepo room.Repository
	roomSvc  *room.Service
	ttSvc    *timetable.Service
	examSvc  *exam.Service
	media    *testutil.MediaStoreMock

	errNotAuthenticated = httpErr{Error: "not authenticated"}
)

func setup(t *testing.T) Server {
	t.Helper()

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	conf = testutil.NewConfig()
	acctRepo = inmemdb.NewAccountRepository(db)
	roomRepo = inmemdb.NewRoomRepository(db)
	media = testutil.NewMediaStoreMock()

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	acctSvc = account.NewService(acctRepo, inmemdb.NewSessionRepository(db), mailSvc, conf)
	roomSvc = room.NewService(roomRepo, media, testutil.LoggerMock{})
	ttSvc = timetable.NewService(inmemdb.NewTimetableRepository(db))
	examSvc = exam.NewService(inmemdb.NewExamRepository(db))

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	account.RegisterValidators(validate, translator)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         testutil.LoggerMock{},
			Validate:       validate,
			Translator:     translator,
			AccountSvc:     acctSvc,
			RoomSvc:        roomSvc,
			TimetableSvc:   ttSvc,
			ExamSvc:        examSvc,
			DisableReqLogs: true,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newUploadRequest builds a multipart room upload; a nil video omits the file part.
func newUploadRequest(t *testing.T, path, token string, fields map[string]string, video []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("WriteField(): %v", err)
		}
	}
	if video != nil {
		part, err := w.CreateFormFile("video", "video.mp4")
		if err != nil {
			t.Fatalf("CreateFormFile(): %v", err)
		}
		if _, err = part.Write(video); err != nil {
			t.Fatalf("part.Write(): %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart.Writer.Close(): %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, acct account.Account) string {
	sess, err := acctSvc.OpenSession(context.Background(), acct)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return sess.Token
}

func sessionCookieValue(rec *httptest.ResponseRecorder) string {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie.Value
		}
	}
	return ""
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
